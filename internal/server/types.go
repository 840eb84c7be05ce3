package server

// userPayload is the JSON body accepted by create and update.  The
// identifier always comes from the path, never from the body.
type userPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// errorBody is the JSON shape of every non-2xx response.
type errorBody struct {
	Error string `json:"error"`
}
