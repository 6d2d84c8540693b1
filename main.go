/*
Copyright © 2025 todoserve contributors
*/
package main

import "github.com/fernhold/todoserve/cmd"

func main() {
	cmd.Execute()
}
