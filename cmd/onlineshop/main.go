// @title			Online Shop API
// @version		1.0
// @description	Accounts, catalog, deposits, baskets and purchases of a small online shop.
// @BasePath		/
package main

import "github.com/thumbtack/onlineshop/cmd/onlineshop/commands"

func main() {
	commands.Execute()
}
