package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	cur := a.session.Current()
	if cur == nil {
		return ""
	}
	s := cur.Name
	if !cur.Authenticated() {
		s += " no-token"
	}
	return fmt.Sprintf("(%s)", s)
}

func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Shop client (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Fprintf(a.out, "shop %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(a.out, "Available commands: shops, publicshops, shopinfo <id>, createshop, products, profile, approval, whoami, order <id>, track <id>, cancelorder <id>, logout, exit")
			} else {
				fmt.Fprintln(a.out, "Available commands: register, login, publicshops, products, exit")
			}
		case "register":
			a.Register(ctx)
		case "login":
			a.Login(ctx)
		case "logout":
			a.Logout(ctx)
		case "whoami":
			a.Whoami(ctx)
		case "approval":
			a.Approval(ctx)
		case "shops":
			a.Shops(ctx)
		case "publicshops":
			a.PublicShops(ctx)
		case "shopinfo":
			if len(args) == 0 {
				fmt.Fprintln(a.out, "Usage: shopinfo <id|uuid>")
				continue
			}
			a.ShopInfo(ctx, args[0])
		case "createshop":
			a.CreateShop(ctx)
		case "products":
			a.Products(ctx)
		case "profile":
			a.Profile(ctx)
		case "order":
			if len(args) == 0 {
				fmt.Fprintln(a.out, "Usage: order <id>")
				continue
			}
			a.Order(ctx, args[0])
		case "track":
			if len(args) == 0 {
				fmt.Fprintln(a.out, "Usage: track <id>")
				continue
			}
			a.Track(ctx, args[0])
		case "cancelorder":
			if len(args) == 0 {
				fmt.Fprintln(a.out, "Usage: cancelorder <id>")
				continue
			}
			a.CancelOrder(ctx, args[0])
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return
		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}
