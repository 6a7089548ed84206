package program

import (
	"github.com/hydepwns/phos-go/internal/color"
	"github.com/hydepwns/phos-go/internal/rule"
)

// DefaultRegistry returns a registry seeded with a representative set of
// built-in programs spanning several categories, enough to exercise
// Registry/Colorizer end-to-end and to demonstrate detection specificity
// (ethereum.lodestar vs. devops.docker both match "docker" commands that
// mention a beacon client, but "lodestar" is the longer, more specific
// pattern and wins).
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(dockerProgram())
	r.Register(nginxProgram())
	r.Register(postgresProgram())
	r.Register(lodestarProgram())
	r.Register(gethProgram())
	r.Register(kubernetesProgram())
	r.Register(genericProgram())
	return r
}

// genericProgram colorizes common log-level words only, for any input that
// no other program claims. It has no detect patterns, so Registry.Detect
// never picks it automatically; callers fall back to it explicitly by ID
// ("custom.generic") when auto-detection finds nothing.
func genericProgram() Program {
	rules := []rule.Rule{
		rule.MustNew(`(?i)\b(error|fatal|panic)\b`).Semantic(color.Error).Bold().Build(),
		rule.MustNew(`(?i)\bwarn(?:ing)?\b`).Semantic(color.Warn).Build(),
		rule.MustNew(`(?i)\b(info|notice)\b`).Semantic(color.Info).Build(),
		rule.MustNew(`(?i)\bdebug\b`).Semantic(color.Debug).Build(),
		rule.MustNew(`(?i)\btrace\b`).Semantic(color.Trace).Build(),
	}
	return NewSimple("custom.generic", "Generic", "Generic log-level colorization for unrecognized programs", Custom, rules)
}

func dockerProgram() Program {
	rules := []rule.Rule{
		rule.MustNew(`(?i)\berror\b`).Semantic(color.Error).Bold().Build(),
		rule.MustNew(`(?i)\bwarn(?:ing)?\b`).Semantic(color.Warn).Build(),
		rule.MustNew(`(?i)\b(info|notice)\b`).Semantic(color.Info).Build(),
		rule.MustNew(`(?i)\bdebug\b`).Semantic(color.Debug).Build(),
		rule.MustNew(`\b[0-9a-f]{12}\b`).Semantic(color.Identifier).Build(),
		rule.MustNew(`\b(container|image|volume|network)\b`).Semantic(color.Label).Build(),
	}
	return NewSimple("devops.docker", "Docker", "Docker container and daemon logs", DevOps, rules).
		WithDetectPatterns("docker")
}

func nginxProgram() Program {
	rules := []rule.Rule{
		rule.MustNew(`(?i)\b(error|crit|emerg|alert)\b`).Semantic(color.Error).Bold().Build(),
		rule.MustNew(`(?i)\bwarn\b`).Semantic(color.Warn).Build(),
		rule.MustNew(`\b[1-2][0-9]{2}\b`).Semantic(color.Success).Build(),
		rule.MustNew(`\b[4-5][0-9]{2}\b`).Semantic(color.Failure).Build(),
		rule.MustNew(`"(GET|POST|PUT|DELETE|PATCH|HEAD)`).Semantic(color.Key).Build(),
	}
	return NewSimple("network.nginx", "Nginx", "Nginx access and error logs", Network, rules).
		WithDetectPatterns("nginx")
}

func postgresProgram() Program {
	rules := []rule.Rule{
		rule.MustNew(`(?i)\bERROR\b`).Semantic(color.Error).Bold().Build(),
		rule.MustNew(`(?i)\bWARNING\b`).Semantic(color.Warn).Build(),
		rule.MustNew(`(?i)\bSTATEMENT\b`).Semantic(color.Debug).Build(),
		rule.MustNew(`\bduration:\s*[\d.]+\s*ms\b`).Semantic(color.Metric).Build(),
	}
	return NewSimple("data.postgres", "PostgreSQL", "PostgreSQL server logs", Data, rules).
		WithDetectPatterns("postgres", "postgresql")
}

func lodestarProgram() Program {
	rules := []rule.Rule{
		rule.MustNew(`(?i)\berror\b`).Semantic(color.Error).Bold().Build(),
		rule.MustNew(`(?i)\bwarn\b`).Semantic(color.Warn).Build(),
		rule.MustNew(`(?i)\bpeers?[=:\s]+(\d+)`).Semantic(color.Metric).Build(),
		rule.MustNew(`(?i)\bslot[=:\s]+(\d+)`).Semantic(color.Number).Build(),
		rule.MustNew(`(?i)\bepoch[=:\s]+(\d+)`).Semantic(color.Number).Build(),
	}
	return NewSimple("ethereum.lodestar", "Lodestar", "Lodestar consensus client logs", Ethereum, rules).
		WithDetectPatterns("lodestar").
		WithDomainColors(map[string]color.Color{"brand": color.Hex(color.BrandColor("lodestar"))})
}

func gethProgram() Program {
	rules := []rule.Rule{
		rule.MustNew(`(?i)\berror\b`).Semantic(color.Error).Bold().Build(),
		rule.MustNew(`(?i)\bwarn\b`).Semantic(color.Warn).Build(),
		rule.MustNew(`(?i)\bpeers?[=:\s]+(\d+)`).Semantic(color.Metric).Build(),
		rule.MustNew(`0x[0-9a-fA-F]{6,}`).Semantic(color.Identifier).Build(),
	}
	return NewSimple("ethereum.geth", "Geth", "Go-Ethereum execution client logs", Ethereum, rules).
		WithDetectPatterns("geth").
		WithDomainColors(map[string]color.Color{"brand": color.Hex(color.BrandColor("geth"))})
}

func kubernetesProgram() Program {
	rules := []rule.Rule{
		rule.MustNew(`(?i)\berror\b`).Semantic(color.Error).Bold().Build(),
		rule.MustNew(`(?i)\bwarn(?:ing)?\b`).Semantic(color.Warn).Build(),
		rule.MustNew(`\b(pod|node|service|deployment|namespace)/[a-zA-Z0-9-_.]+`).Semantic(color.Identifier).Build(),
	}
	return NewSimple("devops.kubernetes", "Kubernetes", "kubectl and control plane logs", DevOps, rules).
		WithDetectPatterns("kubectl", "kubernetes")
}
