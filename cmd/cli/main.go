package main

import (
	"fmt"
	"os"

	"github.com/crucial707/schoolboard/cmd/cli/announcements"
	"github.com/crucial707/schoolboard/cmd/cli/auth"
	"github.com/crucial707/schoolboard/cmd/cli/root"
	"github.com/crucial707/schoolboard/cmd/cli/teachers"
)

func main() {
	rootCmd := root.GetRoot()
	auth.InitAuth(rootCmd)
	announcements.InitAnnouncements(rootCmd)
	teachers.InitTeachers(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
