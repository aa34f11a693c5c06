package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/n-namstack/e-shopping-2024-sub003/internal/client/api"
	"github.com/n-namstack/e-shopping-2024-sub003/internal/client/session"
)

func (a *App) Login(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	sess, err := a.session.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, session.ErrTokenMissing) {
			fmt.Fprintln(a.out, "Login failed: the server did not return a token.")
			return
		}
		fmt.Fprintf(a.out, "Login failed: %v\n", err)
		return
	}

	fmt.Fprintf(a.out, "Logged in as %s <%s>\n", sess.Name, sess.Email)
	if sess.Role == "seller" && !sess.Approved {
		fmt.Fprintln(a.out, "Your seller account is awaiting approval. Use 'approval' to check again.")
	}
}

func (a *App) Register(ctx context.Context) {
	name, err := GetSimpleText(a.reader, "Enter your name", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	role, err := GetSimpleText(a.reader, "Role (buyer/seller, default buyer)", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	if role != "seller" {
		role = "buyer"
	}
	phone, err := GetSimpleText(a.reader, "Phone (optional)", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	sess, err := a.session.Register(ctx, api.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     role,
		Phone:    phone,
	})
	if err != nil {
		fmt.Fprintf(a.out, "Registration failed: %v\n", err)
		return
	}

	fmt.Fprintf(a.out, "Registered and logged in as %s\n", sess.Name)
	if sess.Role == "seller" {
		fmt.Fprintln(a.out, "Seller accounts are reviewed before they can sell. Use 'approval' to check the status.")
	}
}

func (a *App) Logout(ctx context.Context) {
	if a.session.Current() == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return
	}
	if err := a.session.Logout(ctx); err != nil {
		// local state is already cleared at this point
		fmt.Fprintf(a.out, "Logged out, but clearing stored data failed: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Logged out.")
}

func (a *App) Whoami(ctx context.Context) {
	cur := a.session.Current()
	if cur == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return
	}
	fmt.Fprintf(a.out, "%s <%s>\n", cur.Name, cur.Email)
	fmt.Fprintf(a.out, "  id: %s  role: %s  approved: %t\n", cur.ID, cur.Role, cur.Approved)
	if cur.Phone != "" {
		fmt.Fprintf(a.out, "  phone: %s\n", cur.Phone)
	}
	if !cur.Authenticated() {
		fmt.Fprintln(a.out, "  warning: session has no token, log in again to make authenticated calls")
	}
}

func (a *App) Approval(ctx context.Context) {
	approved, err := a.session.CheckApprovalStatus(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Could not check approval status: %v\n", err)
		return
	}
	if approved == nil {
		fmt.Fprintln(a.out, "Log in first to check approval status.")
		return
	}
	if *approved {
		fmt.Fprintln(a.out, "Your account is approved.")
	} else {
		fmt.Fprintln(a.out, "Your account is still awaiting approval.")
	}
}
