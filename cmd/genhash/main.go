// cmd/genhash/main.go — prints the bcrypt hash stored in usuarios.pin_hash.
// Uso: go run ./cmd/genhash 1234
package main

import (
	"fmt"
	"os"

	"comanda/internal/service"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "uso: genhash <pin>")
		os.Exit(2)
	}
	h, err := service.HashPin(os.Args[1])
	if err != nil {
		panic(err)
	}
	fmt.Println(h)
}
