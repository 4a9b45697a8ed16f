package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

const newsPageSize = 5

func (a *App) register(ctx context.Context) {
	name, err := GetSimpleText(a.reader, "Enter your name", os.Stdout)
	if err != nil {
		fmt.Println("Input error:", err)
		return
	}
	email, err := GetSimpleText(a.reader, "Enter your email", os.Stdout)
	if err != nil {
		fmt.Println("Input error:", err)
		return
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		fmt.Println("Input error:", err)
		return
	}

	if !a.session.Register(ctx, name, email, password) {
		fmt.Println("Registration failed")
		return
	}
	fmt.Println("Registered and signed in as", email)
}

func (a *App) login(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Enter your email", os.Stdout)
	if err != nil {
		fmt.Println("Input error:", err)
		return
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		fmt.Println("Input error:", err)
		return
	}

	if !a.session.Login(ctx, email, password) {
		fmt.Println("Login failed")
		return
	}
	fmt.Println("Signed in as", email)
}

func (a *App) logout(ctx context.Context) {
	if !a.session.Logout(ctx) {
		fmt.Println("Logout failed")
		return
	}
	fmt.Println("Signed out")
}

func (a *App) whoami() {
	user, loading := a.session.Current()
	if loading {
		fmt.Println("Session is still loading")
		return
	}
	if user == nil {
		fmt.Println("Not signed in")
		return
	}
	fmt.Printf("%s <%s> (%s)\n", user.Name, user.Email, user.Role)
}

func (a *App) news(ctx context.Context) {
	items, err := a.client.LatestNews(ctx, newsPageSize)
	if err != nil {
		fmt.Println("Could not fetch news:", err)
		return
	}
	if len(items) == 0 {
		fmt.Println("No news yet")
		return
	}
	for _, item := range items {
		fmt.Printf("#%d %s\n    %s\n", item.ID, item.Title, item.Summary)
	}
}

func (a *App) upload(ctx context.Context, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Println("Could not read file:", err)
		return
	}

	title := filepath.Base(path)
	image, err := a.client.UploadImage(ctx, title, data)
	if err != nil {
		fmt.Println("Upload failed:", err)
		return
	}
	fmt.Printf("Uploaded %s as image #%d\n", title, image.ID)
}
