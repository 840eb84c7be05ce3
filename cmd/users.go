package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/userdesk/userdesk/internal/client"
)

var (
	// collection overrides
	usersBaseURL    string
	usersCollection string
	usersTimeout    time.Duration

	// create/update/get fields
	newName  string
	newEmail string
	newPhone string
	userID   int
)

// newDirectoryClient builds the REST client from the loaded config,
// with the flag overrides taking precedence when set.
func newDirectoryClient() (*client.Client, error) {
	base := cfg.API.BaseURL
	if usersBaseURL != "" {
		base = usersBaseURL
	}
	collection := cfg.API.Collection
	if usersCollection != "" {
		collection = usersCollection
	}
	timeout := cfg.API.Timeout()
	if usersTimeout > 0 {
		timeout = usersTimeout
	}
	return client.New(client.Config{
		BaseURL:    base,
		Collection: collection,
		Timeout:    timeout,
		UserAgent:  "userdesk",
	})
}

// Root users command
var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Work with the user collection",
	Long:  "Commands for listing, creating, updating and deleting users in the remote collection.",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newDirectoryClient()
		if err != nil {
			return err
		}
		users, err := c.ListUsers(cmd.Context())
		if err != nil {
			return err
		}
		if len(users) == 0 {
			fmt.Println("No users")
			return nil
		}
		for _, u := range users {
			fmt.Printf("#%-4d %s\n", u.ID, u.Card())
		}
		return nil
	},
}

var usersGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Get a user by ID",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newDirectoryClient()
		if err != nil {
			return err
		}
		user, err := c.GetUser(cmd.Context(), userID)
		if client.IsNotFound(err) {
			fmt.Println("User not found")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Printf("#%d  %s\n", user.ID, user.Card())
		return nil
	},
}

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new user",
	RunE: func(cmd *cobra.Command, args []string) error {
		if newName == "" || newEmail == "" || newPhone == "" {
			return errors.New("--name, --email and --phone must all be specified")
		}
		c, err := newDirectoryClient()
		if err != nil {
			return err
		}
		user, err := c.CreateUser(cmd.Context(), newName, newEmail, newPhone)
		if err != nil {
			return err
		}
		fmt.Printf("Created user #%d  %s\n", user.ID, user.Card())
		return nil
	},
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update a user's fields",
	Long:  "Fetches the user, overlays whichever of --name, --email and --phone are set, and writes the result back.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("name") && !cmd.Flags().Changed("email") && !cmd.Flags().Changed("phone") {
			return errors.New("at least one of --name, --email or --phone must be specified")
		}
		c, err := newDirectoryClient()
		if err != nil {
			return err
		}
		existing, err := c.GetUser(cmd.Context(), userID)
		if err != nil {
			return err
		}

		name, email, phone := existing.Name, existing.Email, existing.Phone
		if cmd.Flags().Changed("name") {
			name = newName
		}
		if cmd.Flags().Changed("email") {
			email = newEmail
		}
		if cmd.Flags().Changed("phone") {
			phone = newPhone
		}

		user, err := c.UpdateUser(cmd.Context(), userID, name, email, phone)
		if err != nil {
			return err
		}
		fmt.Printf("Updated user #%d  %s\n", user.ID, user.Card())
		return nil
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a user by ID",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newDirectoryClient()
		if err != nil {
			return err
		}
		if err := c.DeleteUser(cmd.Context(), userID); err != nil {
			return err
		}
		fmt.Printf("Deleted user #%d\n", userID)
		return nil
	},
}

func init() {

	usersCmd.PersistentFlags().StringVarP(&usersBaseURL,
		"base-url", "a", "", "Collection base URL (overrides the config file)")

	usersCmd.PersistentFlags().StringVar(&usersCollection,
		"collection", "", "Collection name (overrides the config file)")

	usersCmd.PersistentFlags().DurationVar(&usersTimeout,
		"timeout", 0, "HTTP timeout, e.g. 5s (overrides the config file)")

	usersCreateCmd.Flags().StringVarP(&newName, "name", "n", "", "Name of the user")

	usersCreateCmd.Flags().StringVarP(&newEmail, "email", "e", "", "Email of the user")

	usersCreateCmd.Flags().StringVarP(&newPhone, "phone", "p", "", "Phone of the user")

	usersUpdateCmd.Flags().IntVarP(&userID, "id", "i", 0, "ID of the user to update")

	usersUpdateCmd.Flags().StringVarP(&newName, "name", "n", "", "New name")

	usersUpdateCmd.Flags().StringVarP(&newEmail, "email", "e", "", "New email")

	usersUpdateCmd.Flags().StringVarP(&newPhone, "phone", "p", "", "New phone")

	usersGetCmd.Flags().IntVarP(&userID, "id", "i", 0, "ID of the user to retrieve")

	usersDeleteCmd.Flags().IntVarP(&userID, "id", "i", 0, "ID of the user to delete")

	usersCmd.AddCommand(usersListCmd, usersGetCmd, usersCreateCmd, usersUpdateCmd, usersDeleteCmd)
	rootCmd.AddCommand(usersCmd)
}
