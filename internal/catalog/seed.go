package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/vereinskasse/internal/models"
)

func seed(id, name, price string, category models.Category, icon string) models.Product {
	return models.Product{
		ID:       id,
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Category: category,
		Icon:     icon,
	}
}

// Defaults returns a fresh copy of the seed catalog shipped with the system.
func Defaults() []models.Product {
	return []models.Product{
		// Getränke
		seed("bier", "Bier", "3.50", models.CategoryDrinks, "🍺"),
		seed("radler", "Radler", "3.50", models.CategoryDrinks, "🍋"),
		seed("wein-weiss", "Weißwein", "4.00", models.CategoryDrinks, "🍷"),
		seed("wein-rot", "Rotwein", "4.00", models.CategoryDrinks, "🍷"),
		seed("cola", "Cola", "2.50", models.CategoryDrinks, "🥤"),
		seed("fanta", "Fanta", "2.50", models.CategoryDrinks, "🧃"),
		seed("spezi", "Spezi", "2.50", models.CategoryDrinks, "🥤"),
		seed("wasser", "Wasser", "2.00", models.CategoryDrinks, "💧"),
		seed("apfelschorle", "Apfelschorle", "2.50", models.CategoryDrinks, "🍎"),
		seed("kaffee", "Kaffee", "2.00", models.CategoryDrinks, "☕"),

		// Speisen
		seed("bratwurst", "Bratwurst", "4.00", models.CategoryFood, "🌭"),
		seed("steak", "Steak", "6.00", models.CategoryFood, "🥩"),
		seed("pommes", "Pommes", "3.00", models.CategoryFood, "🍟"),
		seed("breze", "Breze", "1.50", models.CategoryFood, "🥨"),
		seed("kuchen", "Kuchen", "2.50", models.CategoryFood, "🍰"),

		// Sonstiges
		seed("eintritt", "Eintritt", "5.00", models.CategoryOther, "🎫"),
		seed("tombola", "Tombola-Los", "2.00", models.CategoryOther, "🎟️"),
	}
}
