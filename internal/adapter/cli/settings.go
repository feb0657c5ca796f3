package cli

import (
	"github.com/spf13/cobra"

	"github.com/couchcryptid/quake-scenario-etl/internal/settings"
)

func newSettingsCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change scenario settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSettingsShow(cmd, g)
		},
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show current settings",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runSettingsShow(cmd, g)
			},
		},
		newSettingCmd(g, "shakehome DIR", "Set the ShakeMap home directory", "ShakeHome", settings.Settings.WithShakeHome),
		newSettingCmd(g, "vs30 FILE", "Set the Vs30 grid file", "VS30File", settings.Settings.WithVS30File),
		newSettingCmd(g, "gmpe NAME", "Set the GMPE set name", "GMPE", settings.Settings.WithGMPE),
	)
	return cmd
}

type settingUpdate func(settings.Settings, string) (settings.Settings, string)

func newSettingCmd(g *globals, use, short, label string, update settingUpdate) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := g.resolveSettingsPath()
			if err != nil {
				return err
			}
			s, err := settings.Load(path)
			if err != nil {
				return err
			}
			s, old := update(s, args[0])
			if err := settings.Save(path, s); err != nil {
				return err
			}
			cmd.Printf("%s: %s -> %s\n", label, orUnset(old), args[0])
			return nil
		},
	}
}

func runSettingsShow(cmd *cobra.Command, g *globals) error {
	path, err := g.resolveSettingsPath()
	if err != nil {
		return err
	}
	s, err := settings.Load(path)
	if err != nil {
		return err
	}
	cmd.Printf("Settings (%s)\n", path)
	cmd.Println("[system]")
	cmd.Printf("  shakehome:   %s\n", orUnset(s.ShakeHome))
	cmd.Printf("  pdlbin:      %s\n", orUnset(s.PDLBin))
	cmd.Printf("  privatekey:  %s\n", orUnset(s.PrivateKey))
	cmd.Printf("  pdlconf:     %s\n", orUnset(s.PDLConf))
	cmd.Printf("  catalog:     %s\n", orUnset(s.Catalog))
	cmd.Println("[data]")
	cmd.Printf("  vs30file:    %s\n", orUnset(s.VS30File))
	cmd.Println("[modeling]")
	cmd.Printf("  gmpe:        %s\n", orUnset(s.GMPE))
	return nil
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
