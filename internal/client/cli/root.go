package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) getStatus() string {
	if user := a.session.CurrentUser(); user != nil {
		return fmt.Sprintf("(%s)", user.Email)
	}
	return "(logged out)"
}

// Root runs the command loop. The prompt reflects the session state,
// switching automatically on login/logout events. Input goes through the
// app's shared reader so REPL lines and prompt answers share one buffer.
func (a *App) Root(ctx context.Context) {
	fmt.Println("Welcome to PackTrack CLI (type 'help' for commands)")

	for {
		fmt.Printf("packtrack %s> ", a.getStatus())
		line, readErr := a.reader.ReadString('\n')
		if readErr != nil {
			break
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		var err error
		switch cmd {
		case "help":
			a.printHelp()
		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "logout":
			a.session.Logout(ctx)
		case "verify":
			err = a.checkVerified(ctx, args)
		case "resend":
			err = a.resendActivation(ctx, args)
		case "whoami":
			a.whoami()
		case "profile":
			err = a.updateProfile(ctx)
		case "items":
			a.listItems(ctx)
		case "additem":
			err = a.addItem(ctx)
		case "delitem":
			err = a.deleteItem(ctx, args)
		case "activity":
			a.showActivity()
		case "boxes":
			a.listBoxes(ctx)
		case "addbox":
			err = a.addBox(ctx)
		case "boxqty":
			err = a.boxQuantity(ctx, args)
		case "delbox":
			err = a.deleteBox(ctx, args)
		case "refresh":
			a.items.Fetch(ctx, true)
			a.boxes.Fetch(ctx, true)
		case "clearcache":
			a.items.ClearCache(ctx)
			a.boxes.ClearCache(ctx)
			fmt.Println("Local cache cleared.")
		case "pack":
			err = a.pack(ctx, args)
		case "shipping":
			err = a.shipping(ctx, args)
		case "cartons":
			err = a.cartons(ctx)
		case "predict":
			err = a.predict(ctx, args)
		case "history":
			err = a.predictionHistory(ctx)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Printf("Unknown command: %s\n", cmd)
		}

		// Mutation errors carry the server message; print it verbatim.
		if err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}
}

func (a *App) printHelp() {
	if a.loggedIn.Load() {
		fmt.Println("Session:  logout, whoami, profile")
		fmt.Println("Items:    items, additem, delitem <id>, activity")
		fmt.Println("Boxes:    boxes, addbox, boxqty <name> <delta>, delbox <id>")
		fmt.Println("Packing:  pack <productId> <qty>, shipping <productId> <qty>, cartons")
		fmt.Println("Vision:   predict <image>, history")
		fmt.Println("Cache:    refresh, clearcache")
		fmt.Println("Other:    help, exit")
	} else {
		fmt.Println("Available commands: register, login, verify <email>, resend <email>, items, boxes, exit")
	}
}
