// Package classify assigns topic labels and tag keywords to free text
// using deterministic keyword-membership rules. The keyword tables are
// declared data, not control flow, so new categories can be added
// without touching the matching algorithm.
package classify

import "strings"

// GeneralLabel is the fallback label when no topic keyword matches.
const GeneralLabel = "general"

// MaxTags is the default cap on extracted tags per record.
const MaxTags = 5

// TopicRule maps one label to the keywords that select it.
type TopicRule struct {
	Label    string
	Keywords []string
}

// DefaultTopics is the built-in topic table. Order matters: it defines
// the tie-break rank used when grouping labels.
var DefaultTopics = []TopicRule{
	{Label: "kubernetes", Keywords: []string{"kubernetes", "k8s", "kubectl", "kubelet", "helm"}},
	{Label: "containers", Keywords: []string{"docker", "container", "containerd", "podman", "oci image"}},
	{Label: "ci-cd", Keywords: []string{"ci/cd", "continuous integration", "continuous delivery", "pipeline", "github actions", "jenkins", "argocd", "gitops"}},
	{Label: "infrastructure", Keywords: []string{"terraform", "infrastructure as code", "pulumi", "ansible", "provisioning", "cloudformation"}},
	{Label: "monitoring", Keywords: []string{"prometheus", "grafana", "observability", "monitoring", "alerting", "tracing", "opentelemetry"}},
	{Label: "security", Keywords: []string{"security", "vulnerability", "cve", "zero-day", "exploit", "supply chain"}},
	{Label: "cloud", Keywords: []string{"aws", "azure", "gcp", "google cloud", "serverless", "lambda", "cloud native"}},
	{Label: "databases", Keywords: []string{"postgres", "postgresql", "mysql", "redis", "sqlite", "database"}},
}

// DefaultVocabulary is the built-in tag vocabulary. Extracted tags are
// returned in this order regardless of where they appear in the text.
var DefaultVocabulary = []string{
	"kubernetes",
	"docker",
	"terraform",
	"ansible",
	"helm",
	"prometheus",
	"grafana",
	"argocd",
	"jenkins",
	"aws",
	"azure",
	"gcp",
	"linux",
	"golang",
	"python",
	"rust",
	"devops",
	"gitops",
	"observability",
	"serverless",
	"microservices",
	"sre",
}

// Classifier performs keyword-membership classification over a topic
// table and a tag vocabulary. Read-only after construction.
type Classifier struct {
	topics []TopicRule
	vocab  []string
	rank   map[string]int
}

// New builds a Classifier from the given tables. Nil tables fall back
// to the defaults.
func New(topics []TopicRule, vocabulary []string) *Classifier {
	if topics == nil {
		topics = DefaultTopics
	}
	if vocabulary == nil {
		vocabulary = DefaultVocabulary
	}
	rank := make(map[string]int, len(topics))
	for i, rule := range topics {
		rank[rule.Label] = i
	}
	return &Classifier{topics: topics, vocab: vocabulary, rank: rank}
}

// Default returns a Classifier over the built-in tables.
func Default() *Classifier {
	return New(nil, nil)
}

// Topics returns the labels whose keywords appear in text, in table
// order. When nothing matches the result is exactly [GeneralLabel];
// it is never empty.
func (c *Classifier) Topics(text string) []string {
	lower := strings.ToLower(text)
	var labels []string
	for _, rule := range c.topics {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				labels = append(labels, rule.Label)
				break
			}
		}
	}
	if len(labels) == 0 {
		return []string{GeneralLabel}
	}
	return labels
}

// Tags returns up to max vocabulary keywords present in text, in
// vocabulary order. Scanning the declared vocabulary rather than the
// text keeps the output order stable across runs.
func (c *Classifier) Tags(text string, max int) []string {
	if max <= 0 {
		max = MaxTags
	}
	lower := strings.ToLower(text)
	var tags []string
	for _, kw := range c.vocab {
		if strings.Contains(lower, kw) {
			tags = append(tags, kw)
			if len(tags) == max {
				break
			}
		}
	}
	return tags
}

// LabelRank returns the topic-table position of label, used to break
// ties between labels that compare equal case-insensitively. Labels
// outside the table (including the general fallback) rank after all
// table entries.
func (c *Classifier) LabelRank(label string) int {
	if r, ok := c.rank[label]; ok {
		return r
	}
	return len(c.topics)
}
