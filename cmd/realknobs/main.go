// Command realknobs inspects and runs the relative-to-absolute knob banks.
package main

import "github.com/spf13/cobra"

func main() {
	cobra.CheckErr(newRootCmd().Execute())
}
