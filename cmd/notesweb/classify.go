package main

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/webnotes/notesweb/pkg/config"
	"github.com/webnotes/notesweb/pkg/gate"
	"github.com/webnotes/notesweb/pkg/tenant"
)

type classifyConfig struct {
	Domain   string   `env:"APP_DOMAIN"`
	Reserved []string `env:"RESERVED_SUBDOMAINS" envDefault:"www" envSeparator:","`
}

// classifyCmd shows what the gate does with a request that carries no
// session cookie. No upstream call is made.
func classifyCmd() *cobra.Command {
	var cfg classifyConfig

	cmd := &cobra.Command{
		Use:   "classify <host> [path]",
		Short: "Show how a host and path are routed",
		Args:  cobra.RangeArgs(1, 2),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			var env classifyConfig
			if err := config.Load(&env); err != nil {
				return err
			}
			if !cmd.Flags().Changed("domain") {
				cfg.Domain = env.Domain
			}
			if !cmd.Flags().Changed("reserved") {
				cfg.Reserved = env.Reserved
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/"
			if len(args) == 2 {
				path = "/" + strings.TrimPrefix(args[1], "/")
			}
			return classify(cmd, cfg, args[0], path)
		},
	}

	cmd.Flags().StringVar(&cfg.Domain, "domain", "", "apex domain, overrides APP_DOMAIN")
	cmd.Flags().StringSliceVar(&cfg.Reserved, "reserved", nil, "reserved subdomains, override RESERVED_SUBDOMAINS")

	return cmd
}

func classify(cmd *cobra.Command, cfg classifyConfig, host, path string) error {
	u, err := url.Parse(path)
	if err != nil {
		return fmt.Errorf("invalid path %q: %w", path, err)
	}

	classifier := tenant.NewClassifier(tenant.WithDomain(cfg.Domain), tenant.WithReserved(cfg.Reserved...))
	g := gate.New(nil, gate.WithClassifier(classifier))

	req := &http.Request{Method: http.MethodGet, Host: host, URL: u, Header: http.Header{}}
	res := g.Evaluate(req)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "host:    %s\n", host)
	fmt.Fprintf(out, "route:   %s\n", res.Route)
	fmt.Fprintf(out, "action:  %s\n", res.Action)
	if res.Tenant != "" {
		fmt.Fprintf(out, "tenant:  %s\n", res.Tenant)
	}
	switch res.Action {
	case gate.ActionRewrite:
		fmt.Fprintf(out, "rewrite: %s\n", tenant.RewritePath(res.Tenant, u.Path))
	case gate.ActionRedirect:
		fmt.Fprintf(out, "location: %s\n", res.Location)
	}
	return nil
}
