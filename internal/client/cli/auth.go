package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/packtrack/packtrack/internal/client/models"
)

// getSimpleText and getPassword are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in
// tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the account fields and creates an account. The
// account is not logged in afterwards: it needs the activation step
// first, so the server acknowledgment is printed instead.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	phone, err := getSimpleText(a.reader, "Enter phone (optional)", os.Stdout)
	if err != nil {
		return err
	}

	ack, err := a.session.Register(ctx, name, email, password, phone)
	if err != nil {
		return err
	}

	fmt.Println(ack)
	return nil
}

// Login prompts for credentials and authenticates. On success the session
// manager emits the logged-in event and the prompt switches.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.Login(ctx, email, password); err != nil {
		return err
	}

	fmt.Println("Logged in.")
	// Warm both caches right away so the first list is served fresh.
	go a.items.Fetch(context.WithoutCancel(ctx), false)
	go a.boxes.Fetch(context.WithoutCancel(ctx), false)
	return nil
}

func (a *App) checkVerified(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: verify <email>")
	}
	verified, err := a.session.CheckVerified(ctx, args[0])
	if err != nil {
		return err
	}
	if verified {
		fmt.Println("Account is activated.")
	} else {
		fmt.Println("Account is not activated yet.")
	}
	return nil
}

func (a *App) resendActivation(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: resend <email>")
	}
	if err := a.session.ResendActivation(ctx, args[0]); err != nil {
		return err
	}
	fmt.Println("Activation email sent.")
	return nil
}

func (a *App) whoami() {
	user := a.session.CurrentUser()
	if user == nil {
		fmt.Println("Not logged in.")
		return
	}
	fmt.Printf("%s <%s> role=%s\n", user.Name, user.Email, user.Role)
	if user.LastLogin != nil {
		fmt.Printf("last login: %s\n", user.LastLogin.Format("2006-01-02 15:04"))
	}
}

func (a *App) updateProfile(ctx context.Context) error {
	fmt.Println("Leave a field empty to keep its current value.")
	name, err := getSimpleText(a.reader, "Name", os.Stdout)
	if err != nil {
		return err
	}
	phone, err := getSimpleText(a.reader, "Phone", os.Stdout)
	if err != nil {
		return err
	}
	company, err := getSimpleText(a.reader, "Company", os.Stdout)
	if err != nil {
		return err
	}
	address, err := getSimpleText(a.reader, "Address", os.Stdout)
	if err != nil {
		return err
	}

	update := models.ProfileUpdate{Name: name, Phone: phone, Company: company, Address: address}
	if err := a.session.UpdateProfile(ctx, update); err != nil {
		return err
	}
	fmt.Println("Profile updated.")
	return nil
}
