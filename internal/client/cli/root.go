package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	s := ""
	if user := a.auth.CurrentUser(); user != nil {
		s = user.Username + " "
	}
	if a.Mode != "" {
		s = s + string(a.Mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) Root(ctx context.Context) {
	fmt.Println("Welcome to GearHub CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("gh %s> ", a.getStatus())
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
				fmt.Println("Available commands: garage, addcar, editcar, delcar, meets, shop, buy, cart, qty, checkout, ping, logout, exit")
			} else {
				fmt.Println("Available commands: register, login, garage, meets, shop, buy, cart, ping, exit")
			}

		case "register":
			a.Register(ctx)
		case "login":
			a.Login(ctx)
		case "logout":
			a.Logout(ctx)
		case "garage":
			a.ShowGarage(ctx)
		case "addcar":
			a.AddCar(ctx)
		case "editcar":
			a.EditCar(ctx, args)
		case "delcar":
			a.DeleteCar(ctx, args)
		case "meets":
			a.ShowMeetups(ctx)
		case "shop":
			a.ShowCatalog()
		case "buy":
			a.Buy(ctx, args)
		case "cart":
			a.ShowCart()
		case "qty":
			a.SetQuantity(args)
		case "checkout":
			a.Checkout()
		case "ping":
			a.Ping(ctx)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}
