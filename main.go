/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/tristendillon/scout/cmd"

func main() {
	cmd.Execute()
}
