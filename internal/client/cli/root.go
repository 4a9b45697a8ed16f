package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	user, loading := a.session.Current()
	if loading {
		return "(...)"
	}
	if user == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", user.Name)
}

func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to the portal CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("portal %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Println("Available commands: whoami, news, upload, logout, exit")
			} else {
				fmt.Println("Available commands: register, login, news, exit")
			}

		case "register":
			a.register(ctx)
		case "login":
			a.login(ctx)
		case "logout":
			a.logout(ctx)
		case "whoami":
			a.whoami()
		case "news":
			a.news(ctx)
		case "upload":
			if len(args) == 0 {
				fmt.Println("Usage: upload <file>")
				continue
			}
			a.upload(ctx, args[0])
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}

}
