// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements favsyncctl, the control CLI of the favsync
// daemon.
//
// Every subcommand is a thin cobra wrapper over one [adapter.ServerAdapter]
// call. Configuration is resolved once per invocation, before the
// subcommand runs, from the config file, the environment and the global
// flags.
package client
