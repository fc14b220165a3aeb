// Command beep is the reference notifier plugin: it rings the terminal bell
// and prints the notification to stderr.
package main

import (
	"context"
	"fmt"
	"os"

	notifyrpc "focuspro/internal/modules/notify/adapter/out/rpc"

	"github.com/hashicorp/go-plugin"
)

type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *notifyrpc.Empty) (*notifyrpc.Metadata, error) {
	return &notifyrpc.Metadata{
		Name:    "beep",
		Version: "1.0.0",
		Events:  []string{"session_completed", "daily_goal", "timer_finished"},
	}, nil
}

func (s *server) Notify(_ context.Context, in *notifyrpc.NotifyRequest) (*notifyrpc.NotifyResponse, error) {
	fmt.Fprintf(os.Stderr, "\a[%s] %s: %s\n", in.Event, in.Title, in.Body)
	return &notifyrpc.NotifyResponse{Delivered: true}, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: notifyrpc.HandshakeConfig,
		Plugins:         notifyrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
