/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "tunelens/cmd"

func main() {
	cmd.Execute()
}
