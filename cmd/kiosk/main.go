// Command kiosk is a terminal ordering client: browse the menu, build a
// cart, enter details, and either finalize directly or pay online through
// the hosted checkout. Restarting after a completed payment resumes the
// persisted order draft.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cherishcafe/orderflow/internal/cart"
	"github.com/cherishcafe/orderflow/internal/catalog"
	"github.com/cherishcafe/orderflow/internal/checkout"
	"github.com/cherishcafe/orderflow/internal/config"
	"github.com/cherishcafe/orderflow/internal/domain"
	"github.com/cherishcafe/orderflow/internal/draft"
	"github.com/cherishcafe/orderflow/internal/notify"
	"github.com/cherishcafe/orderflow/internal/payments"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	cfg := config.Load()

	httpClient := &http.Client{Timeout: 10 * time.Second}
	menu := catalog.New()
	basket := cart.New(menu)
	drafts := draft.NewFileStore(cfg.DraftPath)
	paymentsClient := payments.NewClient(cfg.PaymentsURL, httpClient)
	notifier := notify.NewEmailNotifier(notify.EmailConfig{
		BaseURL:            cfg.Email.BaseURL,
		ServiceID:          cfg.Email.ServiceID,
		CafeTemplateID:     cfg.Email.CafeTemplateID,
		CustomerTemplateID: cfg.Email.CustomerTemplateID,
		PublicKey:          cfg.Email.PublicKey,
	}, httpClient, logger)

	flow, err := checkout.New(basket, drafts, paymentsClient, notifier, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to start checkout:", err)
		os.Exit(1)
	}
	if flow.Paid() {
		fmt.Println("Payment confirmed! Review your details and place the order.")
	}

	k := &kiosk{
		menu:   menu,
		cart:   basket,
		flow:   flow,
		drafts: drafts,
		pay:    paymentsClient,
		logger: logger,
		in:     bufio.NewScanner(os.Stdin),
	}
	k.run()
}

type kiosk struct {
	menu   *catalog.Catalog
	cart   *cart.Cart
	flow   *checkout.Flow
	drafts draft.Store
	pay    *payments.Client
	logger *slog.Logger
	in     *bufio.Scanner
}

func (k *kiosk) run() {
	fmt.Println("Cherish Addis Coffee & Books — type 'help' for commands")
	for {
		fmt.Printf("[%s] > ", k.flow.Step())
		if !k.in.Scan() {
			return
		}
		line := strings.TrimSpace(k.in.Text())
		if line == "" {
			continue
		}
		cmd, arg, _ := strings.Cut(line, " ")

		switch cmd {
		case "help":
			k.help()
		case "menu":
			k.printMenu()
		case "add":
			if err := k.cart.Add(arg); err != nil {
				fmt.Println("error:", err)
			}
		case "remove":
			k.cart.RemoveOne(arg)
		case "clear":
			k.cart.Clear()
		case "cart":
			k.printCart()
		case "checkout":
			if err := k.flow.ContinueToDetails(); err != nil {
				fmt.Println("error:", err)
			}
		case "details":
			k.enterDetails()
		case "back":
			k.back()
		case "pay":
			k.payOnline()
		case "return":
			k.completeReturn(arg)
		case "done":
			if err := k.flow.Reset(); err != nil {
				fmt.Println("error:", err)
			} else {
				fmt.Println("Thank you! See you at the café.")
			}
		case "quit", "exit":
			return
		default:
			fmt.Println("unknown command, type 'help'")
		}
	}
}

func (k *kiosk) help() {
	fmt.Print(`  menu            show the menu
  add <id>        add one item to the cart
  remove <id>     remove one unit of an item
  clear           empty the cart
  cart            show consolidated cart and total
  checkout        continue to details entry
  details         enter customer details and submit the order
  back            go back one step
  pay             start online payment (prints checkout URL)
  return <url>    complete a payment return URL
  done            close a confirmed order
  quit            exit
`)
}

func (k *kiosk) printMenu() {
	var last domain.Category
	for _, item := range k.menu.Items() {
		if item.Category != last {
			fmt.Printf("\n%s\n", item.Category)
			last = item.Category
		}
		fmt.Printf("  %-22s %-30s %4d ETB\n", item.ID, item.Name, item.Price)
	}
	fmt.Println()
}

func (k *kiosk) printCart() {
	lines := k.cart.Consolidated()
	if len(lines) == 0 {
		fmt.Println("cart is empty")
		return
	}
	for _, line := range lines {
		fmt.Printf("  %dx %-30s %4d ETB\n", line.Quantity, line.Item.Name, line.Subtotal())
	}
	fmt.Printf("  total: %d ETB\n", k.cart.Total())
}

func (k *kiosk) enterDetails() {
	d := k.flow.Details()
	d.Name = k.prompt("name", d.Name)
	d.Email = k.prompt("email", d.Email)
	d.Phone = k.prompt("phone", d.Phone)
	if k.prompt("order ahead? (y/n)", "n") == "y" {
		d.OrderType = domain.OrderTypeOrderAhead
		d.PreferredTime = k.prompt("preferred time", d.PreferredTime)
	} else {
		d.OrderType = domain.OrderTypeDineIn
	}
	d.Notes = k.prompt("notes", d.Notes)
	if !k.flow.Paid() && k.prompt("pay online? (y/n)", "n") == "y" {
		d.PaymentOption = domain.PayOnline
	} else if k.flow.Paid() {
		d.PaymentOption = domain.PayOnline
	} else {
		d.PaymentOption = domain.PayAtVenue
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := k.flow.SubmitDetails(ctx, d); err != nil {
		fmt.Println("error:", err)
		return
	}
	switch k.flow.Step() {
	case checkout.StepPayment:
		fmt.Println("Run 'pay' to get your checkout link.")
	case checkout.StepConfirmation:
		fmt.Printf("Order confirmed — thank you, %s! A confirmation was sent to %s.\n", d.Name, d.Email)
	}
}

func (k *kiosk) back() {
	var err error
	switch k.flow.Step() {
	case checkout.StepDetails:
		err = k.flow.BackToCart()
	case checkout.StepPayment:
		err = k.flow.BackToDetails()
	default:
		err = fmt.Errorf("nothing to go back to")
	}
	if err != nil {
		fmt.Println("error:", err)
	}
}

func (k *kiosk) payOnline() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	url, err := k.flow.ProceedToPayment(ctx)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("Open this checkout link in your browser:")
	fmt.Println(" ", url)
	fmt.Println("After paying, run: return <the url you were redirected to>")
}

func (k *kiosk) completeReturn(rawURL string) {
	if rawURL == "" {
		fmt.Println("usage: return <url>")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := checkout.CompleteReturn(ctx, rawURL, k.drafts, k.pay, k.logger); err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("Payment verified. Restart the kiosk to complete your order.")
}

func (k *kiosk) prompt(label, current string) string {
	if current != "" {
		fmt.Printf("%s [%s]: ", label, current)
	} else {
		fmt.Printf("%s: ", label)
	}
	if !k.in.Scan() {
		return current
	}
	text := strings.TrimSpace(k.in.Text())
	if text == "" {
		return current
	}
	return text
}
