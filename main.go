/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/seyaul/hana-auth/cmd"

func main() {
	cmd.Execute()
}
