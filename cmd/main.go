package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/borchero/zeus/pkg/zeus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"k8s.io/apimachinery/pkg/runtime"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	_ "k8s.io/client-go/plugin/pkg/client/auth"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/healthz"
	metricsserver "sigs.k8s.io/controller-runtime/pkg/metrics/server"

	"github.com/borchero/cloudflare-dns-operator/api/v1alpha1"
	"github.com/borchero/cloudflare-dns-operator/internal/cloudflare"
	configv1 "github.com/borchero/cloudflare-dns-operator/internal/config/v1"
	"github.com/borchero/cloudflare-dns-operator/internal/controllers"
	"github.com/borchero/cloudflare-dns-operator/internal/crds"
	"github.com/borchero/cloudflare-dns-operator/internal/dnscheck"
)

type options struct {
	apiToken      string
	configFile    string
	checkInterval time.Duration
	resolver      string
}

func main() {
	ctx := ctrl.SetupSignalHandler()
	logger := zeus.Logger(ctx)
	defer zeus.Sync()

	root := &cobra.Command{
		Use:           "cloudflare-dns-operator",
		Short:         "Manage Cloudflare DNS records via Kubernetes resources",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newControllerCommand(ctx, logger),
		newCrdCommand(),
		newListZonesCommand(ctx, logger),
	)

	if err := root.ExecuteContext(ctx); err != nil {
		logger.Fatal("command failed", zap.Error(err))
	}
}

func newControllerCommand(ctx context.Context, logger *zap.Logger) *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "controller",
		Short: "Run the operator's reconciliation loops",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runController(ctx, logger, opts)
		},
	}
	addTokenFlag(cmd, &opts)
	cmd.Flags().StringVar(&opts.configFile, "config", "",
		"Path to an optional configuration file for manager-level settings.")
	cmd.Flags().DurationVar(&opts.checkInterval, "dns-check-interval", defaultCheckInterval(),
		"Interval at which dns propagation is verified. Zero disables verification.")
	cmd.Flags().StringVar(&opts.resolver, "dns-resolver", dnscheck.DefaultResolver,
		"Address of the resolver used to verify dns propagation.")
	return cmd
}

func newCrdCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "crd",
		Short: "Print the custom resource definitions required by the operator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := cmd.OutOrStdout().Write(crds.Manifest())
			return err
		},
	}
}

func newListZonesCommand(ctx context.Context, logger *zap.Logger) *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "list-zones",
		Short: "List all zones accessible with the configured API token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := cloudflareClient(logger, opts)
			if err != nil {
				return err
			}
			zones, err := client.ListZones(ctx)
			if err != nil {
				return fmt.Errorf("failed to list zones: %w", err)
			}
			for _, zone := range zones {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", zone.ID, zone.Name)
			}
			return nil
		},
	}
	addTokenFlag(cmd, &opts)
	return cmd
}

func runController(ctx context.Context, logger *zap.Logger, opts options) error {
	config, err := configv1.Load(opts.configFile)
	if err != nil {
		return err
	}
	cfClient, err := cloudflareClient(logger, opts)
	if err != nil {
		return err
	}

	manager, err := ctrl.NewManager(ctrl.GetConfigOrDie(), ctrl.Options{
		Scheme:                  newScheme(),
		LeaderElection:          config.LeaderElection.LeaderElect,
		LeaderElectionID:        config.LeaderElection.ResourceName,
		LeaderElectionNamespace: config.LeaderElection.ResourceNamespace,
		Metrics:                 metricsserver.Options{BindAddress: config.Metrics.BindAddress},
		HealthProbeBindAddress:  config.Health.HealthProbeBindAddress,
	})
	if err != nil {
		return fmt.Errorf("unable to create manager: %w", err)
	}

	// Set up the dns checker and the record controller sharing the propagation state
	state := dnscheck.NewMatchState()
	checker := dnscheck.NewChecker(
		manager.GetClient(), logger, opts.checkInterval, state,
		dnscheck.WithResolver(opts.resolver),
	)
	if err := manager.Add(checker); err != nil {
		return fmt.Errorf("unable to register dns checker: %w", err)
	}
	reconciler := controllers.NewDNSRecordReconciler(
		manager.GetClient(), logger, cfClient, checker, state,
	)
	if err := reconciler.SetupWithManager(manager); err != nil {
		return fmt.Errorf("unable to start dns record controller: %w", err)
	}

	// Add health check endpoints
	if err := manager.AddReadyzCheck("readyz", healthz.Ping); err != nil {
		return fmt.Errorf("unable to set up ready check at /readyz: %w", err)
	}
	if err := manager.AddHealthzCheck("healthz", healthz.Ping); err != nil {
		return fmt.Errorf("unable to set up health check at /healthz: %w", err)
	}

	// Start the manager
	logger.Info("launching manager")
	if err := manager.Start(ctx); err != nil {
		return fmt.Errorf("failed to run manager: %w", err)
	}
	logger.Info("gracefully shut down")
	return nil
}

func cloudflareClient(logger *zap.Logger, opts options) (cloudflare.Client, error) {
	token := opts.apiToken
	if token == "" {
		token = os.Getenv("CLOUDFLARE_API_TOKEN")
	}
	if token == "" {
		return nil, fmt.Errorf(
			"a Cloudflare API token must be provided via --cloudflare-api-token or " +
				"the CLOUDFLARE_API_TOKEN environment variable",
		)
	}
	return cloudflare.NewClient(token, logger), nil
}

func addTokenFlag(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringVar(&opts.apiToken, "cloudflare-api-token", "",
		"API token used to authenticate against the Cloudflare API. Falls back to the "+
			"CLOUDFLARE_API_TOKEN environment variable.")
}

// defaultCheckInterval honors the CHECK_DNS_RESOLUTION environment variable which historically
// toggled propagation checks without exposing an interval.
func defaultCheckInterval() time.Duration {
	switch os.Getenv("CHECK_DNS_RESOLUTION") {
	case "false", "0", "no":
		return 0
	default:
		return time.Minute
	}
}

func newScheme() *runtime.Scheme {
	scheme := runtime.NewScheme()
	utilruntime.Must(clientgoscheme.AddToScheme(scheme))
	utilruntime.Must(v1alpha1.AddToScheme(scheme))
	return scheme
}
