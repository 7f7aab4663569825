package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dylanwal/BigSMILES/bigsmiles"
)

var reactionCmd = &cobra.Command{
	Use:   "reaction <notation>",
	Short: "Parse a reaction string",
	Long:  "Parse a reactants>>products or reactants>agents>products string and print each side.",
	Args:  cobra.ExactArgs(1),
	RunE:  runReaction,
}

func init() {
	rootCmd.AddCommand(reactionCmd)
}

func runReaction(cmd *cobra.Command, args []string) error {
	rxn, err := bigsmiles.ParseReaction(args[0])
	if err != nil {
		return err
	}

	if viper.GetBool("verbose") {
		fmt.Println(rxn.String())
	}

	printReactionSide("reactants", rxn.Reactants)
	printReactionSide("agents", rxn.Agents)
	printReactionSide("products", rxn.Products)
	return nil
}

func printReactionSide(name string, side []*bigsmiles.Graph) {
	if len(side) == 0 {
		return
	}
	fmt.Printf("%s:\n", name)
	for _, g := range side {
		printDiagnostics(g)
		fmt.Printf("  %s\n", bigsmiles.Render(g, bigsmiles.RenderConfig{Color: colorMode()}))
	}
}
