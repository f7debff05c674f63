// Copyright 2025 Waykeeper.
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import "github.com/boxer32/waykeeper-brand-hub/cmd/brandhub-cli/commands"

func main() {
	commands.Execute()
}
