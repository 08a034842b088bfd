package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// NavItem is one sidebar link.
type NavItem struct {
	Label string `json:"label"`
	Path  string `json:"path"`
	API   string `json:"api"`
}

// Sidebar lists the console pages in display order.
var Sidebar = []NavItem{
	{Label: "Dashboard", Path: "/", API: "/api/dashboard"},
	{Label: "Members", Path: "/members", API: "/api/members"},
	{Label: "Products", Path: "/products", API: "/api/products"},
	{Label: "Orders", Path: "/orders", API: "/api/orders"},
	{Label: "Payouts", Path: "/payouts", API: "/api/payouts/redeem-requests"},
	{Label: "Payments", Path: "/payments", API: "/api/payments"},
	{Label: "Tree View", Path: "/referral-tree", API: "/api/referral-tree/search"},
	{Label: "Income Reports", Path: "/income-reports", API: "/api/income-reports"},
	{Label: "Gift Management", Path: "/gifts", API: "/api/gifts"},
	{Label: "Settings", Path: "/settings", API: "/api/settings/content"},
}

// Navigation returns the sidebar with the active entry marked.
func Navigation(c *fiber.Ctx) error {
	active := c.Query("active", "/")
	items := make([]fiber.Map, 0, len(Sidebar))
	for _, item := range Sidebar {
		items = append(items, fiber.Map{
			"label":  item.Label,
			"path":   item.Path,
			"api":    item.API,
			"active": item.Path == active,
		})
	}
	return dataResponse(c, items)
}

// Index is the console root. Browsers arriving after login land here.
func Index(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"name":       "MLM Admin Console",
			"navigation": Sidebar,
		},
	})
}
