/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"github.com/fceschmidt/shapefile-utils/cmd/shputil/cmd"
)

func main() {
	cmd.Execute()
}
