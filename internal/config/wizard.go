package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .cshub.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to cshub! Let's configure your bot.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Steam API key (optional; profile lookups need it).
	keyPrompt := promptui.Prompt{
		Label: "Steam Web API key (empty disables profile lookups)",
		Mask:  '*',
	}
	apiKey, err := keyPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("api key prompt: %w", err)
	}
	cfg.SteamAPIKey = apiKey

	// 2. Listen port.
	portPrompt := promptui.Prompt{
		Label:   "HTTP port for the transport server",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port prompt: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	// 3. Inventory page size.
	sizePrompt := promptui.Select{
		Label: "Inventory items per page",
		Items: []string{"4", "8", "12", "16"},
	}
	_, sizeStr, err := sizePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("page size prompt: %w", err)
	}
	cfg.InventoryPageSize, _ = strconv.Atoi(sizeStr)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(".cshub.yml"); err != nil {
		return nil, err
	}
	fmt.Println("\nConfiguration written to .cshub.yml")
	return cfg, nil
}
