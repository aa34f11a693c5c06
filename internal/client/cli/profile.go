package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/n-namstack/e-shopping-2024-sub003/internal/client/api"
)

// Profile edits the logged-in user's profile. Empty answers keep the
// current value; the avatar is optional.
func (a *App) Profile(ctx context.Context) {
	cur := a.session.Current()
	if cur == nil || !cur.Authenticated() {
		fmt.Fprintln(a.out, "Log in to edit your profile.")
		return
	}

	name, err := GetSimpleText(a.reader, fmt.Sprintf("Name [%s]", cur.Name), a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	email, err := GetSimpleText(a.reader, fmt.Sprintf("Email [%s]", cur.Email), a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	phone, err := GetSimpleText(a.reader, fmt.Sprintf("Phone [%s]", cur.Phone), a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	avatarPath, err := GetSimpleText(a.reader, "Avatar file (optional)", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	req := api.ProfileUpdate{Name: name, Email: email, Phone: phone}

	if avatarPath != "" {
		f, err := os.Open(avatarPath)
		if err != nil {
			fmt.Fprintf(a.out, "Could not open avatar file: %v\n", err)
			return
		}
		defer f.Close()
		req.Avatar = f
		req.AvatarFilename = filepath.Base(avatarPath)
	}

	sess, err := a.session.UpdateProfile(ctx, req)
	if err != nil {
		fmt.Fprintf(a.out, "Profile update failed: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "Profile updated: %s <%s>\n", sess.Name, sess.Email)
}
