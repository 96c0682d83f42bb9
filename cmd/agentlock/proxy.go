package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/agentlock/agentlock/internal/config"
	"github.com/agentlock/agentlock/internal/policy"
	"github.com/agentlock/agentlock/internal/proxy"
)

var (
	flagProxyAddr   string
	flagProxyPolicy string
)

func init() {
	cmd := &cobra.Command{
		Use:   "proxy",
		Short: "Run the policy-checked egress proxy",
		RunE:  runProxy,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVar(&flagProxyAddr, "addr", "127.0.0.1:8888", "listen address")
	cmd.Flags().StringVar(&flagProxyPolicy, "policy", "", "egress policy YAML file")
}

func runProxy(cmd *cobra.Command, _ []string) error {
	policyPath := flagProxyPolicy
	if policyPath == "" {
		cwd, _ := filepath.Abs(".")
		var lcfg config.FileConfig
		if c, err := config.LoadLocal(cwd); err == nil {
			lcfg = c
		}
		if lcfg.Policy != nil {
			policyPath = *lcfg.Policy
		}
	}
	if policyPath == "" {
		return fmt.Errorf("no policy file: pass --policy or set policy in .agentlock.yml")
	}
	pol, err := policy.Load(policyPath)
	if err != nil {
		return err
	}
	fmt.Printf("egress proxy on %s (default %s, %d rules)\n", flagProxyAddr, pol.Egress.Default, len(pol.Egress.Rules))
	return proxy.ListenAndServe(flagProxyAddr, pol)
}
