package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/blitzforge/linked-roles/internal/adapters/discord"
	"github.com/blitzforge/linked-roles/internal/domain/linkage"
)

const defaultDiscordTimeout = 30 * time.Second

// staffMetadataSchema is the single boolean field users see on their Discord
// profile when the linked role is connected.
func staffMetadataSchema() []linkage.MetadataField {
	return []linkage.MetadataField{
		{
			Key:         linkage.StaffRole,
			Name:        "Verified Staff",
			Description: "Is a BlitzForge staff member",
			Type:        linkage.MetadataTypeBooleanEqual,
		},
	}
}

func newDiscordClient(cmdCtx *commandContext) (*discord.Client, error) {
	if err := cmdCtx.Config.Discord.Validate(); err != nil {
		return nil, err
	}
	client, err := discord.NewClient(discord.ClientConfig{
		ClientID:     cmdCtx.Config.Discord.ClientID,
		ClientSecret: cmdCtx.Config.Discord.ClientSecret,
		RedirectURI:  cmdCtx.Config.Discord.RedirectURI,
		BotToken:     cmdCtx.Config.Discord.BotToken,
		AuthorizeURL: cmdCtx.Config.Discord.AuthorizeURL,
		APIBaseURL:   cmdCtx.Config.Discord.APIBaseURL,
		PlatformName: cmdCtx.Config.Discord.PlatformName,
	})
	if err != nil {
		return nil, fmt.Errorf("create discord client: %w", err)
	}
	return client, nil
}

func runRegisterMetadata(cmdCtx *commandContext, _ []string) error {
	client, err := newDiscordClient(cmdCtx)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultDiscordTimeout)
	defer cancel()

	registered, err := client.RegisterMetadataSchema(ctx, staffMetadataSchema())
	if err != nil {
		return fmt.Errorf("register metadata schema: %w", err)
	}

	cmdCtx.Logger.Info("metadata schema registered",
		"application_id", cmdCtx.Config.Discord.ClientID,
		"fields", len(registered))
	return printMetadataFields(registered)
}

func runShowMetadata(cmdCtx *commandContext, args []string) error {
	rawJSON := false
	for _, a := range args {
		if a == "--json" || a == "-json" {
			rawJSON = true
		}
	}

	client, err := newDiscordClient(cmdCtx)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultDiscordTimeout)
	defer cancel()

	fields, err := client.MetadataSchema(ctx)
	if err != nil {
		return fmt.Errorf("fetch metadata schema: %w", err)
	}

	if rawJSON {
		payload, marshalErr := json.MarshalIndent(fields, "", "  ")
		if marshalErr != nil {
			return fmt.Errorf("encode metadata schema: %w", marshalErr)
		}
		return writef(os.Stdout, "%s\n", payload)
	}

	if len(fields) == 0 {
		return writeln(os.Stdout, "No metadata schema registered for this application.")
	}
	return printMetadataFields(fields)
}

func printMetadataFields(fields []linkage.MetadataField) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err := writeln(w, "Key\tName\tType\tDescription"); err != nil {
		return err
	}
	for _, f := range fields {
		if err := writef(w, "%s\t%s\t%d\t%s\n", f.Key, f.Name, f.Type, f.Description); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush metadata table: %w", err)
	}
	return nil
}
