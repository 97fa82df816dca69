package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smartspend/smartspend/internal/cli"
	"github.com/smartspend/smartspend/internal/data"
)

func profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage the user profile",
	}

	cmd.AddCommand(showProfileCmd())
	cmd.AddCommand(updateProfileCmd())

	return cmd
}

func showProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the user profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			d, s, err := openData()
			if err != nil {
				return err
			}
			defer s.Close()

			profile, err := d.Profile.Get(ctx)
			if err != nil {
				return fmt.Errorf("failed to get profile: %w", err)
			}

			content := fmt.Sprintf("Name:   %s\nEmail:  %s", profile.Name, profile.Email)
			if profile.Bio != "" {
				content += "\nBio:    " + profile.Bio
			}
			if profile.AvatarURL != "" {
				content += "\nAvatar: " + profile.AvatarURL
			}
			fmt.Println(cli.RenderBox("Profile", content))

			return nil
		},
	}
}

func updateProfileCmd() *cobra.Command {
	var (
		name      string
		email     string
		bio       string
		avatarURL string
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update profile fields",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			d, s, err := openData()
			if err != nil {
				return err
			}
			defer s.Close()

			patch := data.ProfilePatch{}
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("email") {
				patch.Email = &email
			}
			if cmd.Flags().Changed("bio") {
				patch.Bio = &bio
			}
			if cmd.Flags().Changed("avatar-url") {
				patch.AvatarURL = &avatarURL
			}
			if patch.Name == nil && patch.Email == nil && patch.Bio == nil && patch.AvatarURL == nil {
				return fmt.Errorf("nothing to update; pass --name, --email, --bio, or --avatar-url")
			}

			profile, err := d.UpdateProfile(ctx, patch)
			if err != nil {
				if err = reportSaveError(err); err != nil {
					return fmt.Errorf("failed to update profile: %w", err)
				}
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Profile updated for %s <%s>", profile.Name, profile.Email)))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&bio, "bio", "", "short bio")
	cmd.Flags().StringVar(&avatarURL, "avatar-url", "", "avatar image URL")

	return cmd
}
