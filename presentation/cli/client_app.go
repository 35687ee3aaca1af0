package cli

import (
	"encoding/hex"
	"fmt"
	"net/netip"

	"gopkg.in/urfave/cli.v1"

	"firewall/application/client"
	"firewall/domain/command"
	"firewall/domain/network"
)

var socketFlag = cli.StringFlag{Name: "socket, s", Value: defaultSocket, Usage: "control socket path"}

// NewClientApp builds the `firewallctl` CLI app (spec.md §6): one
// subcommand per control command, sharing the --socket flag.
func NewClientApp() *cli.App {
	app := cli.NewApp()
	app.Name = "firewallctl"
	app.Usage = "send a single control command to firewalld"
	app.Flags = []cli.Flag{socketFlag}
	app.Commands = []cli.Command{
		blockCommand,
		unblockCommand,
		nodeCommand,
		filterRemoteCommand,
		disconnectedCommand,
	}
	return app
}

var blockCommand = cli.Command{
	Name:      "block",
	Usage:     "block <ip>",
	ArgsUsage: "<ip>",
	Action: func(ctx *cli.Context) error {
		addr, err := requireAddr(ctx, 0)
		if err != nil {
			return err
		}
		return send(ctx, command.Block(addr))
	},
}

var unblockCommand = cli.Command{
	Name:      "unblock",
	Usage:     "unblock <ip>",
	ArgsUsage: "<ip>",
	Action: func(ctx *cli.Context) error {
		addr, err := requireAddr(ctx, 0)
		if err != nil {
			return err
		}
		return send(ctx, command.Unblock(addr))
	},
}

var nodeCommand = cli.Command{
	Name:      "node",
	Usage:     "node <port>",
	ArgsUsage: "<port>",
	Action: func(ctx *cli.Context) error {
		port, err := requirePort(ctx, 0)
		if err != nil {
			return err
		}
		return send(ctx, command.FilterLocalPort(port))
	},
}

var filterRemoteCommand = cli.Command{
	Name:      "filter-remote",
	Usage:     "filter-remote <addr:port>",
	ArgsUsage: "<addr:port>",
	Action: func(ctx *cli.Context) error {
		ap, err := requireAddrPort(ctx, 0)
		if err != nil {
			return err
		}
		return send(ctx, command.FilterRemoteAddr(ap))
	},
}

var disconnectedCommand = cli.Command{
	Name:      "disconnected",
	Usage:     "disconnected <addr:port> <hex32>",
	ArgsUsage: "<addr:port> <hex32>",
	Action: func(ctx *cli.Context) error {
		ap, err := requireAddrPort(ctx, 0)
		if err != nil {
			return err
		}
		pk, err := requirePublicKey(ctx, 1)
		if err != nil {
			return err
		}
		return send(ctx, command.Disconnected(ap, pk))
	},
}

func send(ctx *cli.Context, c command.Command) error {
	if err := client.Send(ctx.GlobalString("socket"), c); err != nil {
		return cli.NewExitError(fmt.Sprintf("firewallctl: %v", err), 1)
	}
	return nil
}

func requireAddr(ctx *cli.Context, i int) (netip.Addr, error) {
	arg := ctx.Args().Get(i)
	if arg == "" {
		return netip.Addr{}, cli.NewExitError("missing <ip> argument", 1)
	}
	addr, err := netip.ParseAddr(arg)
	if err != nil || !addr.Is4() {
		return netip.Addr{}, cli.NewExitError(fmt.Sprintf("invalid ipv4 address %q", arg), 1)
	}
	return addr, nil
}

func requireAddrPort(ctx *cli.Context, i int) (netip.AddrPort, error) {
	arg := ctx.Args().Get(i)
	if arg == "" {
		return netip.AddrPort{}, cli.NewExitError("missing <addr:port> argument", 1)
	}
	ap, err := netip.ParseAddrPort(arg)
	if err != nil || !ap.Addr().Is4() {
		return netip.AddrPort{}, cli.NewExitError(fmt.Sprintf("invalid ipv4 addr:port %q", arg), 1)
	}
	return ap, nil
}

func requirePort(ctx *cli.Context, i int) (uint16, error) {
	arg := ctx.Args().Get(i)
	if arg == "" {
		return 0, cli.NewExitError("missing <port> argument", 1)
	}
	var port uint16
	if _, err := fmt.Sscanf(arg, "%d", &port); err != nil {
		return 0, cli.NewExitError(fmt.Sprintf("invalid port %q", arg), 1)
	}
	return port, nil
}

func requirePublicKey(ctx *cli.Context, i int) (network.PublicKey, error) {
	arg := ctx.Args().Get(i)
	raw, err := hex.DecodeString(arg)
	if err != nil || len(raw) != network.PublicKeySize {
		return network.PublicKey{}, cli.NewExitError(fmt.Sprintf("invalid hex public key %q (want %d bytes)", arg, network.PublicKeySize), 1)
	}
	var pk network.PublicKey
	copy(pk[:], raw)
	return pk, nil
}
