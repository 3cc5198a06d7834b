// SPDX-License-Identifier: MPL-2.0

package main

import cmd "etstool/cmd/etstool"

func main() {
	cmd.Execute()
}
