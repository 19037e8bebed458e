package config

import (
	"errors"
	"os"

	"github.com/goccy/go-yaml"
)

// Menu maps item names to prices.
type Menu map[string]int

// defaultMenu is served when no menu file is configured.
var defaultMenu = Menu{
	"Burger":  199,
	"Pizza":   299,
	"Pasta":   249,
	"Biryani": 279,
}

// LoadMenu reads an item -> price catalog from a YAML file. An empty path
// yields the builtin menu.
func LoadMenu(path string) (Menu, error) {
	if path == "" {
		menu := make(Menu, len(defaultMenu))
		for item, price := range defaultMenu {
			menu[item] = price
		}
		return menu, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var menu Menu
	if err := yaml.Unmarshal(data, &menu); err != nil {
		return nil, err
	}
	if len(menu) == 0 {
		return nil, errors.New("menu file is empty")
	}
	return menu, nil
}
