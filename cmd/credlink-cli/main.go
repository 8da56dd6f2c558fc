package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/mail"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"

	credlink "github.com/goliatone/go-credlink"
	"github.com/goliatone/go-credlink/pkg/catalog"
	mailpkg "github.com/goliatone/go-credlink/pkg/mail"
	"github.com/goliatone/go-credlink/pkg/mail/resend"
	"github.com/goliatone/go-credlink/pkg/model"
)

func main() {
	baseURL := flag.String("base-url", envOr("CREDLINK_BASE_URL", "http://localhost:8080"), "public origin links are built against")
	flag.Parse()

	config, err := promptConfig()
	if err != nil {
		log.Fatalf("aborted: %v", err)
	}

	link, err := credlink.BuildLink(*baseURL, config)
	if err != nil {
		log.Fatalf("build link: %v", err)
	}

	fmt.Println()
	fmt.Println("Share this link with your client:")
	fmt.Println(link)

	if os.Getenv("CREDLINK_RESEND_API_KEY") != "" {
		maybeSendInvite(config, link)
	}
}

func promptConfig() (model.FormConfig, error) {
	var config model.FormConfig

	if err := survey.AskOne(&survey.Input{Message: "Client name:"}, &config.ClientName,
		survey.WithValidator(survey.Required)); err != nil {
		return config, err
	}
	if err := survey.AskOne(&survey.Input{
		Message: "Business name:",
		Default: config.ClientName,
	}, &config.BusinessName); err != nil {
		return config, err
	}
	if err := survey.AskOne(&survey.Input{Message: "Return email (completed PDF goes here):"},
		&config.ReturnEmail, survey.WithValidator(emailValidator)); err != nil {
		return config, err
	}

	presets := catalog.Presets()
	options := make([]string, 0, len(presets))
	for _, p := range presets {
		options = append(options, fmt.Sprintf("%s (%s)", p.Group.Platform, p.Code))
	}
	var picked []int
	if err := survey.AskOne(&survey.MultiSelect{
		Message: "Preset credential groups:",
		Options: options,
	}, &picked); err != nil {
		return config, err
	}
	for _, idx := range picked {
		config.Presets = append(config.Presets, presets[idx].Code)
	}

	for {
		addCustom := false
		if err := survey.AskOne(&survey.Confirm{Message: "Add a custom credential group?"}, &addCustom); err != nil {
			return config, err
		}
		if !addCustom {
			break
		}
		group, err := promptCustomGroup()
		if err != nil {
			return config, err
		}
		config.Custom = append(config.Custom, group)
	}

	var expiryDays string
	if err := survey.AskOne(&survey.Input{
		Message: "Expires in days (0 for no expiry):",
		Default: "0",
	}, &expiryDays, survey.WithValidator(intValidator)); err != nil {
		return config, err
	}
	if days, _ := strconv.Atoi(strings.TrimSpace(expiryDays)); days > 0 {
		config.ExpiresAt = time.Now().Add(time.Duration(days) * 24 * time.Hour).Truncate(time.Second).UTC()
	}

	if err := survey.AskOne(&survey.Confirm{Message: "Request file uploads?"}, &config.RequestUploads); err != nil {
		return config, err
	}
	return config, nil
}

func promptCustomGroup() (model.CredentialGroup, error) {
	var group model.CredentialGroup

	if err := survey.AskOne(&survey.Input{Message: "Platform name:"}, &group.Platform,
		survey.WithValidator(survey.Required)); err != nil {
		return group, err
	}

	options := make([]string, 0, len(catalog.CustomFieldTypes))
	for _, ft := range catalog.CustomFieldTypes {
		options = append(options, catalog.FieldLabel(ft))
	}
	var picked []int
	if err := survey.AskOne(&survey.MultiSelect{
		Message: "Fields to collect:",
		Options: options,
	}, &picked, survey.WithValidator(survey.MinItems(1))); err != nil {
		return group, err
	}
	for _, idx := range picked {
		group.Fields = append(group.Fields, catalog.CustomFieldTypes[idx])
	}

	if err := survey.AskOne(&survey.Input{Message: "Signup URL (blank to skip):"}, &group.SignupURL); err != nil {
		return group, err
	}
	return group, nil
}

func maybeSendInvite(config model.FormConfig, link string) {
	sendNow := false
	if err := survey.AskOne(&survey.Confirm{Message: "Send the invite email now?"}, &sendNow); err != nil || !sendNow {
		return
	}

	var clientEmail string
	if err := survey.AskOne(&survey.Input{Message: "Client email:"}, &clientEmail,
		survey.WithValidator(emailValidator)); err != nil {
		return
	}

	sender, err := resend.New(os.Getenv("CREDLINK_RESEND_API_KEY"), os.Getenv("CREDLINK_EMAIL_FROM"))
	if err != nil {
		log.Fatalf("sender: %v", err)
	}
	dispatcher, err := mailpkg.NewDispatcher(sender,
		mailpkg.WithInviteReplyTo(os.Getenv("CREDLINK_REPLY_TO")))
	if err != nil {
		log.Fatalf("dispatcher: %v", err)
	}
	if err := dispatcher.SendInviteLink(context.Background(), clientEmail, config.ClientName, config.BusinessName, link); err != nil {
		log.Fatalf("send invite: %v", err)
	}
	fmt.Println("Invite sent.")
}

func emailValidator(ans interface{}) error {
	raw, _ := ans.(string)
	if _, err := mail.ParseAddress(strings.TrimSpace(raw)); err != nil {
		return errors.New("enter a valid email address")
	}
	return nil
}

func intValidator(ans interface{}) error {
	raw, _ := ans.(string)
	if _, err := strconv.Atoi(strings.TrimSpace(raw)); err != nil {
		return errors.New("enter a whole number")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
