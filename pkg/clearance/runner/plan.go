// Copyright 2026 The Markclear Authors
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"context"

	"github.com/markclear/markclear/pkg/clearance"
	"github.com/markclear/markclear/pkg/clearance/adapters/cratesio"
	"github.com/markclear/markclear/pkg/clearance/adapters/dockerhub"
	"github.com/markclear/markclear/pkg/clearance/adapters/github"
	"github.com/markclear/markclear/pkg/clearance/adapters/huggingface"
	"github.com/markclear/markclear/pkg/clearance/adapters/npm"
	"github.com/markclear/markclear/pkg/clearance/adapters/pypi"
	"github.com/markclear/markclear/pkg/clearance/adapters/rdap"
	"github.com/markclear/markclear/pkg/clearance/variants"
)

// Channel names select which namespace families a run probes.
const (
	ChannelGitHub      = "github"
	ChannelNPM         = "npm"
	ChannelPyPI        = "pypi"
	ChannelCrates      = "crates"
	ChannelDockerHub   = "dockerhub"
	ChannelHuggingFace = "huggingface"
	ChannelDomain      = "domain"
)

// AllChannels lists every channel in plan order.
var AllChannels = []string{
	ChannelGitHub, ChannelNPM, ChannelPyPI, ChannelCrates,
	ChannelDockerHub, ChannelHuggingFace, ChannelDomain,
}

// KnownChannel reports whether name is a valid channel.
func KnownChannel(name string) bool {
	for _, c := range AllChannels {
		if c == name {
			return true
		}
	}
	return false
}

// Checkers bundles the per-namespace adapters a plan draws from.
type Checkers struct {
	GitHub      github.Checker
	NPM         npm.Checker
	PyPI        pypi.Checker
	Crates      cratesio.Checker
	DockerHub   dockerhub.Checker
	HuggingFace huggingface.Checker
	Domain      rdap.Checker
}

// Plan expands a candidate mark into the check batch for the selected
// channels. The same normalized mark is used as owner and name where a
// namespace requires both. Domains fan out over the configured TLDs.
func Plan(mark string, channels, tlds []string, c Checkers) []Task {
	name := variants.Normalize(mark)
	selected := make(map[string]bool, len(channels))
	for _, ch := range channels {
		selected[ch] = true
	}
	var tasks []Task
	if selected[ChannelGitHub] && c.GitHub != nil {
		tasks = append(tasks,
			Task{
				Adapter: string(clearance.NamespaceGitHubOrg),
				Query:   map[string]string{"org": name},
				Run: func(ctx context.Context) (clearance.Record, error) {
					return c.GitHub.CheckOrg(ctx, name)
				},
			},
			Task{
				Adapter: string(clearance.NamespaceGitHubRepo),
				Query:   map[string]string{"name": name, "owner": name},
				Run: func(ctx context.Context) (clearance.Record, error) {
					return c.GitHub.CheckRepo(ctx, name, name)
				},
			})
	}
	if selected[ChannelNPM] && c.NPM != nil {
		tasks = append(tasks, Task{
			Adapter: string(clearance.NamespaceNPM),
			Query:   map[string]string{"name": name},
			Run: func(ctx context.Context) (clearance.Record, error) {
				return c.NPM.CheckPackage(ctx, name)
			},
		})
	}
	if selected[ChannelPyPI] && c.PyPI != nil {
		tasks = append(tasks, Task{
			Adapter: string(clearance.NamespacePyPI),
			Query:   map[string]string{"name": name},
			Run: func(ctx context.Context) (clearance.Record, error) {
				return c.PyPI.CheckProject(ctx, name)
			},
		})
	}
	if selected[ChannelCrates] && c.Crates != nil {
		tasks = append(tasks, Task{
			Adapter: string(clearance.NamespaceCrates),
			Query:   map[string]string{"name": name},
			Run: func(ctx context.Context) (clearance.Record, error) {
				return c.Crates.CheckCrate(ctx, name)
			},
		})
	}
	if selected[ChannelDockerHub] && c.DockerHub != nil {
		tasks = append(tasks, Task{
			Adapter: string(clearance.NamespaceDockerHub),
			Query:   map[string]string{"name": name, "namespace": name},
			Run: func(ctx context.Context) (clearance.Record, error) {
				return c.DockerHub.CheckRepository(ctx, name, name)
			},
		})
	}
	if selected[ChannelHuggingFace] && c.HuggingFace != nil {
		tasks = append(tasks,
			Task{
				Adapter: string(clearance.NamespaceHFModel),
				Query:   map[string]string{"name": name, "owner": name},
				Run: func(ctx context.Context) (clearance.Record, error) {
					return c.HuggingFace.CheckModel(ctx, name, name)
				},
			},
			Task{
				Adapter: string(clearance.NamespaceHFSpace),
				Query:   map[string]string{"name": name, "owner": name},
				Run: func(ctx context.Context) (clearance.Record, error) {
					return c.HuggingFace.CheckSpace(ctx, name, name)
				},
			})
	}
	if selected[ChannelDomain] && c.Domain != nil {
		for _, tld := range tlds {
			fqdn := name + "." + tld
			tasks = append(tasks, Task{
				Adapter: string(clearance.NamespaceDomain),
				Query:   map[string]string{"candidateMark": mark, "value": fqdn},
				Run: func(ctx context.Context) (clearance.Record, error) {
					return c.Domain.CheckDomain(ctx, mark, fqdn)
				},
			})
		}
	}
	return tasks
}
