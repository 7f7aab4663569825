package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "bigsmiles",
	Short: "SMILES and BigSMILES line notation toolkit",
	Long:  "bigsmiles parses, normalizes, lints, and renders SMILES and BigSMILES polymer line notation.",
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().Bool("color", false, "Colorize rendered notation")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("color", rootCmd.PersistentFlags().Lookup("color"))
}

func initConfig() {
	viper.SetEnvPrefix("BIGSMILES")
	viper.AutomaticEnv()
}
