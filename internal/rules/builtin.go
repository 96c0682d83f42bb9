package rules

import (
	"regexp"

	"github.com/agentlock/agentlock/internal/types"
)

// ruleDef is the compact table form the built-in rules are declared in.
// Each entry is converted to a Rule by builtinRules.
type ruleDef struct {
	id       string
	name     string
	severity types.Severity
	desc     string
	patterns []string
	files    []string
	check    CheckKind
}

func builtinRules() []Rule {
	out := make([]Rule, 0, len(builtinDefs))
	for _, d := range builtinDefs {
		r := Rule{
			ID:          d.id,
			Name:        d.name,
			Severity:    d.severity,
			Description: d.desc,
			FileFilters: d.files,
			Check:       d.check,
		}
		for _, p := range d.patterns {
			r.Patterns = append(r.Patterns, regexp.MustCompile(p))
		}
		out = append(out, r)
	}
	return out
}

var builtinDefs = []ruleDef{
	// ------------------------------------------------------------------
	// Critical: credentials and outright hostile behavior
	// ------------------------------------------------------------------
	{
		id: "exposed-api-key", name: "Exposed API key", severity: types.SevCritical,
		desc: "A provider API key or access token is present in plain text.",
		patterns: []string{
			`\bsk-ant-[A-Za-z0-9_-]{20,}\b`,
			`\bsk-[A-Za-z0-9]{20,}\b`,
			`\bAKIA[0-9A-Z]{16}\b`,
			`\bgh[pousr]_[A-Za-z0-9]{36,}\b`,
			`\bglpat-[A-Za-z0-9_-]{20,}\b`,
			`\bxox[baprs]-[A-Za-z0-9-]{10,}\b`,
			`\bAIza[0-9A-Za-z_-]{35}\b`,
			`\bhf_[A-Za-z0-9]{30,}\b`,
		},
		files: []string{"*"},
	},
	{
		id: "hardcoded-credentials", name: "Hardcoded credentials", severity: types.SevCritical,
		desc: "A password, secret, or token literal is assigned in source or config.",
		patterns: []string{
			`(?i)\b(password|passwd|pwd|secret|api_key|apikey|auth_token|access_token|client_secret)\b\s*[:=]\s*["'][^"'\s]{8,}["']`,
		},
		files: []string{"*"},
	},
	{
		id: "private-key-block", name: "Private key material", severity: types.SevCritical,
		desc: "A PEM private key block is embedded in the project.",
		patterns: []string{
			`-----BEGIN (?:RSA |EC |DSA |OPENSSH |PGP )?PRIVATE KEY(?: BLOCK)?-----`,
		},
		files: []string{"*"},
	},
	{
		id: "remote-script-execution", name: "Remote script piped to shell", severity: types.SevCritical,
		desc: "A remote resource is downloaded and piped straight into a shell.",
		patterns: []string{
			`(?i)\b(curl|wget)\b[^|\n]{0,160}\|\s*(sudo\s+)?(ba|z|da)?sh\b`,
			`(?i)\biwr\b[^|\n]{0,160}\|\s*iex\b`,
		},
		files: []string{"*"},
	},
	{
		id: "data-exfiltration", name: "Data exfiltration indicator", severity: types.SevCritical,
		desc: "Content references sending data to a known exfiltration endpoint.",
		patterns: []string{
			`(?i)\b(send|post|upload|transmit|forward|exfiltrate)\b[^\n]{0,60}https?://`,
			`(?i)webhook\.site|requestbin|burpcollaborator|oastify\.com`,
			`https?://[^\s"']+\.(?:tk|ml|ga|cf|gq)\b`,
		},
		files: []string{"*"},
	},
	{
		id: "hidden-instruction-tag", name: "Hidden instruction tag", severity: types.SevCritical,
		desc: "An instruction-like markup tag is hidden inside agent-facing text.",
		patterns: []string{
			`(?i)<(IMPORTANT|SYSTEM|INSTRUCTION|ADMIN|OVERRIDE|HIDDEN|SECRET|PRIORITY)\b[^>]*>`,
		},
		files: []string{"*.md", "*.txt", "SKILL.md", "skill.manifest.json"},
	},

	// ------------------------------------------------------------------
	// High: injection, concealment, dangerous execution
	// ------------------------------------------------------------------
	{
		id: "prompt-override", name: "Prompt override attempt", severity: types.SevHigh,
		desc: "Text instructs the agent to discard its prior instructions.",
		patterns: []string{
			`(?i)\bignore\s+(all\s+|any\s+)?(previous|prior|above|earlier)\s+(instructions|rules|prompts|directives)\b`,
			`(?i)\bdisregard\s+(your|the)\s+(system\s+prompt|instructions)\b`,
		},
		files: []string{"*"},
	},
	{
		id: "concealment-directive", name: "Concealment directive", severity: types.SevHigh,
		desc: "Text instructs the agent to hide behavior from the user.",
		patterns: []string{
			`(?i)\bdo\s?n[o']t\s+(mention|tell|inform|show|display|reveal)\b`,
			`(?i)\bkeep\s+(this|it)\s+(secret|hidden|confidential)\b`,
			`(?i)\buser\s+(should|must)\s+not\s+(know|see)\b`,
		},
		files: []string{"*.md", "*.txt"},
	},
	{
		id: "dynamic-code-eval", name: "Dynamic code evaluation", severity: types.SevHigh,
		desc: "Code evaluates dynamically constructed strings.",
		patterns: []string{
			`\beval\s*\(`,
			`\bnew\s+Function\s*\(`,
			`\bexec\s*\(\s*["'\x60]`,
		},
		files: []string{"*.js", "*.ts", "*.mjs", "*.py"},
	},
	{
		id: "destructive-command", name: "Destructive filesystem command", severity: types.SevHigh,
		desc: "A command removes files recursively from home or root paths.",
		patterns: []string{
			`\brm\s+-[a-z]*rf?[a-z]*\s+(/|~|\$HOME)`,
		},
		files: []string{"*"},
	},
	{
		id: "credential-path-access", name: "Credential path access", severity: types.SevHigh,
		desc: "Content references local credential stores such as SSH or cloud keys.",
		patterns: []string{
			`~/\.ssh\b|\bid_rsa\b|\bauthorized_keys\b`,
			`~/\.aws\b|~/\.config/gcloud\b|~/\.azure\b|~/\.kube/config\b`,
			`/etc/passwd\b|/etc/shadow\b`,
		},
		files: []string{"*"},
	},
	{
		id: "env-harvesting", name: "Environment harvesting", severity: types.SevHigh,
		desc: "Content reads or forwards the contents of environment files.",
		patterns: []string{
			`(?i)\b(cat|read|print|dump|send|upload)\b[^\n]{0,40}\.env\b`,
			`(?i)\bprintenv\b|\benv\s*\|\s*(curl|nc)\b`,
		},
		files: []string{"*"},
	},
	{
		id: "env-file-secret", name: "Secret in environment file", severity: types.SevHigh,
		desc: "An environment file defines a credential-looking variable.",
		patterns: []string{
			`(?im)^\s*[A-Z0-9_]*(KEY|TOKEN|SECRET|PASSWORD|CREDENTIALS)[A-Z0-9_]*\s*=\s*\S{8,}`,
		},
		files: []string{".env"},
	},
	{
		id: "obfuscated-payload", name: "Obfuscated payload", severity: types.SevHigh,
		desc: "Encoded content is decoded and executed at runtime.",
		patterns: []string{
			`(?i)base64\s+(-d|--decode)[^\n]{0,60}\|\s*(ba|z)?sh\b`,
			`(?i)\batob\s*\(`,
			`(?i)String\.fromCharCode\s*\(`,
			`(?i)\bbytes\.fromhex\s*\(`,
		},
		files: []string{"*"},
	},
	{
		id: "unrestricted-tool-access", name: "Unrestricted tool access", severity: types.SevHigh,
		desc: "An agent or MCP configuration allows every tool with a wildcard.",
		patterns: []string{
			`(?i)"allow(ed)?_?tools"\s*:\s*\[\s*"\*"\s*\]`,
			`(?i)allow(ed)?_?tools\s*:\s*\n?\s*-?\s*["']?\*["']?`,
		},
		files: []string{"mcp.json", "*.json", "*.yaml", "*.yml"},
	},

	// ------------------------------------------------------------------
	// Medium: risky configuration and suspicious references
	// ------------------------------------------------------------------
	{
		id:       "missing-skill-manifest",
		name:     "Missing skill manifest",
		severity: types.SevMed,
		desc:     "A skill directory ships without a skill.manifest.json declaration.",
		check:    CheckManifest,
	},
	{
		id: "insecure-transport", name: "Insecure HTTP transport", severity: types.SevMed,
		desc: "Code fetches remote content over plain HTTP.",
		patterns: []string{
			`(?i)\b(fetch|curl|wget|axios|requests?\.(get|post)|urlopen)\b[^\n]{0,60}["']http://`,
		},
		files: []string{"*.js", "*.ts", "*.py", "*.sh", "*.rb"},
	},
	{
		id: "url-shortener", name: "URL shortener reference", severity: types.SevMed,
		desc: "Agent-facing text links through a URL shortener, hiding the destination.",
		patterns: []string{
			`https?://(bit\.ly|tinyurl\.com|t\.co|goo\.gl|is\.gd|rb\.gy)/\S+`,
		},
		files: []string{"*.md", "*.txt"},
	},
	{
		id: "broad-permissions", name: "World-writable permissions", severity: types.SevMed,
		desc: "Files are made world-writable or world-executable.",
		patterns: []string{
			`\bchmod\s+(-[a-zA-Z]+\s+)?(777|666|a\+rwx)\b`,
		},
		files: []string{"*"},
	},
	{
		id: "privilege-escalation", name: "Privilege escalation", severity: types.SevMed,
		desc: "A script invokes sudo, escalating beyond the agent's privileges.",
		patterns: []string{
			`(?m)^[^#\n]*\bsudo\s+\S`,
		},
		files: []string{"*.sh", "*.bash", "*.zsh", "Makefile", "Justfile"},
	},
	{
		id: "miner-indicator", name: "Cryptominer indicator", severity: types.SevMed,
		desc: "Content references mining pools or known miner binaries.",
		patterns: []string{
			`(?i)stratum\+tcp://|\bxmrig\b|\bminerd\b|\bcpuminer\b`,
		},
		files: []string{"*"},
	},

	// ------------------------------------------------------------------
	// Low: hygiene
	// ------------------------------------------------------------------
	{
		id: "security-todo", name: "Unresolved security TODO", severity: types.SevLow,
		desc: "A TODO or FIXME marker flags unfinished security work.",
		patterns: []string{
			`(?i)\b(TODO|FIXME|HACK|XXX)\b[^\n]{0,60}\b(security|auth|password|secret|token|permission)\b`,
		},
		files: []string{"*"},
	},
	{
		id: "secret-logging", name: "Secret value logged", severity: types.SevLow,
		desc: "A logging call interpolates a credential-looking variable.",
		patterns: []string{
			`(?i)\b(console\.(log|debug)|print(ln)?|logger?\.(debug|info|warn))\s*\([^\n)]{0,60}\b(password|secret|token|api_key|apikey)\b`,
		},
		files: []string{"*.js", "*.ts", "*.py", "*.go", "*.rb"},
	},
	{
		id: "wildcard-cors", name: "Wildcard CORS origin", severity: types.SevLow,
		desc: "A CORS policy allows any origin.",
		patterns: []string{
			`(?i)Access-Control-Allow-Origin["'\s:=]+\*`,
		},
		files: []string{"*"},
	},
	{
		id: "debug-endpoint", name: "Local debug endpoint", severity: types.SevLow,
		desc: "Configuration points at a localhost endpoint, likely a leftover.",
		patterns: []string{
			`https?://(localhost|127\.0\.0\.1|0\.0\.0\.0)(:\d+)?`,
		},
		files: []string{"*.json", "*.yaml", "*.yml", "*.toml", ".env"},
	},
}
