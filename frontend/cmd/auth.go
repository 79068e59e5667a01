package cmd

import (
	"fmt"
	"os"
	"strings"

	ishell "github.com/abiosoft/ishell"
	"github.com/common-nighthawk/go-figure"
	"github.com/mhasan/lifeos/frontend/client"
	"github.com/mhasan/lifeos/lib/utils"
)

// guestCommands is a slice of Command structures containing commands that are available to users who have not logged in.
var guestCommands []Command

// userCommands is a slice of Command structures containing commands that are available only to logged in users.
var userCommands []Command

// commonCommands is a slice of Command structures containing commands that are available to all users, regardless of their login status.
var commonCommands []Command

// loggedIn is a boolean variable that indicates whether a user is currently logged in.
var loggedIn bool

// shell represents an instance of the interactive shell used for this application.
var shell *ishell.Shell

// The Command struct defines a user command in the system. Each command has a Name, a Desc (short for description), and a Func (the function to execute when the command is called).
type Command struct {
	Name string                   // Name is the name of the command.
	Desc string                   // Desc is a short description of what the command does.
	Func func(c *ishell.Context) // Func is the function that is executed when the command is invoked.
}

// signInShell swaps the guest command set for the signed-in command set.
func signInShell() {
	loggedIn = true
	for _, command := range guestCommands {
		shell.DeleteCmd(command.Name)
	}
	addCommands(shell, userCommands)
}

// signOutShell swaps the signed-in command set for the guest command set.
func signOutShell() {
	loggedIn = false
	for _, command := range userCommands {
		shell.DeleteCmd(command.Name)
	}
	addCommands(shell, guestCommands)
}

// handleSessionError prints the given error, and if the session has expired,
// clears the local tokens and drops back to the guest commands.
func handleSessionError(err error) {
	if err.Error() == "expired refresh token" {
		utils.PrintError("Session expired, please sign in again by typing 'signin' in the terminal.")
		client.ClearKeyring()
		signOutShell()
		return
	}
	utils.PrintError(err.Error())
}

// InitAuthCmd initializes the shell and sets up the commands for guest and
// signed-in scenarios.
func InitAuthCmd() {

	// Initialize shell
	shell = ishell.New()

	// Define the commands available to a guest user (not signed in)
	guestCommands = []Command{
		{
			Name: "signin",
			Desc: "Sign in to your account",
			Func: func(c *ishell.Context) {
				var username, password string
				for {
					c.Print("Enter Username: ")
					username = c.ReadLine()

					if len(username) > 1 {
						break
					}
					c.Println("Username must be longer than 1 character.")
				}

				for {
					c.Print("Enter Password: ")
					password = c.ReadPassword()

					if len(password) > 0 {
						break
					}
					c.Println("Password cannot be empty.")
				}

				_, _, err := client.SignIn(username, password)
				if err != nil {
					utils.PrintError(err.Error())
					return
				}
				c.Println("Welcome, you are now signed in.")
				signInShell()
			},
		},
		{
			Name: "signup",
			Desc: "Sign up for a new account",
			Func: func(c *ishell.Context) {
				var username, email, password string
				for {
					c.Print("Enter Username: ")
					username = c.ReadLine()

					if len(username) > 1 {
						break
					}
					c.Println("Username must be longer than 1 character.")
				}

				for {
					c.Print("Enter Email: ")
					email = c.ReadLine()

					if utils.ValidateEmail(email) {
						break
					}
					c.Println("Email is not valid.")
				}

				for {
					c.Print("Enter Password: ")
					password = c.ReadPassword()

					if utils.ValidatePassword(password) {
						c.Print("Confirm Password: ")
						confirmPassword := c.ReadPassword()

						if password == confirmPassword {
							break
						} else {
							c.Println()
							c.Println("Passwords do not match. Please try again.")
							c.Println()
						}
					} else {
						c.Println()
						c.Println("Password must be at least 8 characters and contain both letters and numbers.")
						c.Println()
					}
				}

				_, _, err := client.SignUp(username, email, password)
				if err != nil {
					utils.PrintError(err.Error())
					return
				}
				c.Println("Account created successfully. You are now signed in.")
				signInShell()
			},
		},
	}

	// Define the commands available to a signed in user
	userCommands = []Command{
		{
			Name: "updatemyacc",
			Desc: "Update your account information",
			Func: func(c *ishell.Context) {
				var currentPassword, newUsername, newEmail, newPassword string

				for {
					c.Print("Enter Current Password: ")
					currentPassword = c.ReadPassword()

					if len(currentPassword) > 0 {
						break
					}
					c.Println("Current password cannot be empty.")
				}

				for {
					c.Print("Do you want to update your username? (yes/no): ")
					response := strings.ToLower(c.ReadLine())
					if response == "yes" || response == "no" {
						if response == "yes" {
							for {
								c.Print("Enter New Username: ")
								newUsername = c.ReadLine()

								if len(newUsername) > 1 {
									break
								}
								c.Println("New username must be longer than 1 character.")
							}
						}
						break
					}
					c.Println("Invalid response. Please type 'yes' or 'no'.")
				}

				for {
					c.Print("Do you want to update your email? (yes/no): ")
					response := strings.ToLower(c.ReadLine())
					if response == "yes" || response == "no" {
						if response == "yes" {
							for {
								c.Print("Enter New Email: ")
								newEmail = c.ReadLine()

								if utils.ValidateEmail(newEmail) {
									break
								}
								c.Println("New email is not valid.")
							}
						}
						break
					}
					c.Println("Invalid response. Please type 'yes' or 'no'.")
				}

				for {
					c.Print("Do you want to update your password? (yes/no): ")
					response := strings.ToLower(c.ReadLine())
					if response == "yes" || response == "no" {
						if response == "yes" {
							for {
								c.Print("Enter New Password: ")
								newPassword = c.ReadPassword()

								if utils.ValidatePassword(newPassword) {
									c.Print("Confirm New Password: ")
									confirmPassword := c.ReadPassword()

									if newPassword == confirmPassword {
										break
									}
									c.Println()
									c.Println("Passwords do not match. Please try again.")
									c.Println()
								} else {
									c.Println()
									c.Println("Password must be at least 8 characters and contain both letters and numbers.")
									c.Println()
								}
							}
						}
						break
					}
					c.Println("Invalid response. Please type 'yes' or 'no'.")
				}

				if err := client.UpdateUser(currentPassword, newUsername, newEmail, newPassword); err != nil {
					handleSessionError(err)
					return
				}
				c.Println("Account updated successfully.")
			},
		},
		{
			Name: "signout",
			Desc: "Sign out from your account",
			Func: func(c *ishell.Context) {
				err := client.SignOut()
				if err != nil {
					utils.PrintError(err.Error())
					return
				}
				c.Println("You are now signed out.")
				signOutShell()
			},
		},
		{
			Name: "deletemyacc",
			Desc: "Delete your account and all of your data",
			Func: func(c *ishell.Context) {
				for {
					c.Print("Are you sure you want to delete your account? (yes/no): ")
					response := strings.ToLower(c.ReadLine())
					if response == "no" {
						return
					} else if response == "yes" {
						if err := client.DeleteUser(); err != nil {
							handleSessionError(err)
							return
						}
						c.Println("Account deleted successfully.")
						signOutShell()
						return
					}
					c.Println("Invalid response. Please type 'yes' or 'no'.")
				}
			},
		},
	}

	// Life data commands are only meaningful once signed in.
	userCommands = append(userCommands, lifeCommands()...)

	// Define common commands that are always available, regardless of login state
	commonCommands = []Command{
		{
			Name: "exit",
			Desc: "Exit the application",
			Func: func(c *ishell.Context) {
				fmt.Println("Goodbye!")
				os.Exit(0)
			},
		},
	}

	// The help command is created separately to avoid the cyclic dependency
	commonCommands = append(commonCommands, Command{
		Name: "help",
		Desc: "List available commands",
		Func: func(c *ishell.Context) {
			c.Println("Available commands:")
			if loggedIn {
				for _, command := range userCommands {
					c.Println("  |-- '" + command.Name + "' : " + command.Desc)
				}
			} else {
				for _, command := range guestCommands {
					c.Println("  |-- '" + command.Name + "' : " + command.Desc)
				}
			}
			for _, command := range commonCommands {
				c.Println("  |-- '" + command.Name + "' : " + command.Desc)
			}
			c.Println()
		},
	})
}

// addCommands is a helper function that adds the given commands to the shell.
func addCommands(shell *ishell.Shell, commands []Command) {
	for _, command := range commands {
		shell.AddCmd(&ishell.Cmd{
			Name: command.Name,
			Help: "Command: " + command.Name,
			Func: command.Func,
		})
	}
}

// Execute is the main function that executes the shell.
// It welcomes the user, adds common and guest commands to the shell, and runs the shell.
func Execute() {
	shell.Println()
	figure.NewFigure("LifeOS", "basic", true).Print()
	shell.Println("Welcome to LifeOS -- your whole life in one terminal. Type 'help' to see a list of commands.")

	addCommands(shell, commonCommands)
	addCommands(shell, guestCommands)

	shell.Run()
}
