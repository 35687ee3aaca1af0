// Package cli wires the urfave/cli.v1 apps for both binaries (spec.md
// §6): the daemon and the one-shot control client.
package cli

import (
	"context"
	"fmt"
	"log"
	"net/netip"

	"gopkg.in/urfave/cli.v1"

	"firewall/application/daemon"
	"firewall/domain/events"
	palSignal "firewall/infrastructure/PAL/signal"
	"firewall/infrastructure/controlsocket"
	"firewall/infrastructure/ebpf"
	"firewall/infrastructure/pow"
	"firewall/presentation/elevation"
	"firewall/presentation/signals/shutdown"
)

const (
	defaultDevice = "enp4s0"
	defaultSocket = "/tmp/tezedge_firewall.sock"
)

// NewDaemonApp builds the `firewalld` CLI app.
func NewDaemonApp() *cli.App {
	app := cli.NewApp()
	app.Name = "firewalld"
	app.Usage = "in-kernel packet-filtering firewall for a peer-to-peer node"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "device, d", Value: defaultDevice, Usage: "interface to attach"},
		cli.StringSliceFlag{Name: "blacklist, b", Usage: "IPv4 addresses to seed the blacklist (repeatable)"},
		cli.Float64Flag{Name: "target, t", Value: pow.DefaultTarget, Usage: "proof-of-work difficulty"},
		cli.StringFlag{Name: "socket, s", Value: defaultSocket, Usage: "control socket path"},
	}
	app.Action = runDaemon
	return app
}

func runDaemon(ctx *cli.Context) error {
	if !elevation.IsElevated() {
		return cli.NewExitError(fmt.Sprintf("insufficient privileges: %s", elevation.Hint()), 1)
	}

	device := ctx.String("device")
	socketPath := ctx.String("socket")
	target := ctx.Float64("target")

	loaded, err := ebpf.Attach(device)
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("attach classifier to %s: %v", device, err), 1)
	}
	defer loaded.Close()

	for _, raw := range ctx.StringSlice("blacklist") {
		addr, err := netip.ParseAddr(raw)
		if err != nil || !addr.Is4() {
			log.Printf("firewalld: skip seed blacklist entry %q: not an IPv4 address", raw)
			continue
		}
		if !loaded.Maps.BlacklistInsert(addr.As4()) {
			log.Printf("firewalld: blacklist map full, dropped seed entry %q (reason=%s)", raw, events.ReasonCommandLineArgument)
			continue
		}
		log.Printf("firewalld: blacklisted %s (reason=%s)", addr, events.ReasonCommandLineArgument)
	}

	listener, err := controlsocket.Listen(socketPath)
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("listen on %s: %v", socketPath, err), 1)
	}

	reader, err := ebpf.NewEventReader(loaded)
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("open perf reader: %v", err), 1)
	}
	defer reader.Close()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := shutdown.NewHandler(appCtx, cancel, palSignal.NewDefaultProvider(), shutdown.NewNotifier())
	handler.Handle()

	d := daemon.New(loaded.Maps, target)
	log.Printf("firewalld: attached to %s, listening on %s", device, socketPath)
	if err := d.Run(appCtx, reader, listener); err != nil {
		return cli.NewExitError(fmt.Sprintf("daemon exited: %v", err), 1)
	}
	return nil
}
