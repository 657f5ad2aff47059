package jenkins

import (
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/net/html"

	"build-notifier/internal/domain/model"
)

const (
	classSCMTrigger      = "hudson.triggers.SCMTrigger$SCMTriggerCause"
	classGitHubPush      = "com.cloudbees.jenkins.GitHubPushCause"
	classUserIDCause     = "hudson.model.Cause$UserIdCause"
	classUpstreamTrigger = "hudson.model.Cause$UpstreamCause"
)

// buildInfo is the subset of /api/json this client reads.
type buildInfo struct {
	Number          int      `json:"number"`
	URL             string   `json:"url"`
	Building        bool     `json:"building"`
	Result          *string  `json:"result"`
	Timestamp       int64    `json:"timestamp"`
	FullDisplayName string   `json:"fullDisplayName"`
	Actions         []action `json:"actions"`
}

type action struct {
	Class  string      `json:"_class"`
	Causes []causeInfo `json:"causes"`
}

type causeInfo struct {
	Class            string      `json:"_class"`
	ShortDescription string      `json:"shortDescription"`
	UserID           string      `json:"userId"`
	UserName         string      `json:"userName"`
	UpstreamCauses   []causeInfo `json:"upstreamCauses"`
}

func (c *Client) toBuild(job string, info buildInfo) model.Build {
	result := model.ResultNone
	if info.Result != nil && !info.Building {
		result = model.ParseResult(*info.Result)
	}

	var causes []model.Cause
	for _, a := range info.Actions {
		causes = append(causes, convertCauses(a.Causes)...)
	}

	return model.Build{
		JobDisplayName: jobDisplayName(info.FullDisplayName, info.Number, job),
		Number:         info.Number,
		Result:         result,
		Timestamp:      c.timestamp(info.Timestamp),
		URL:            c.relativeURL(info.URL),
		Causes:         causes,
	}
}

// timestamp renders the build start as a relative time, like the Jenkins UI does.
func (c *Client) timestamp(millis int64) string {
	if millis <= 0 {
		return ""
	}
	return humanize.RelTime(time.UnixMilli(millis), c.now(), "ago", "from now")
}

// jobDisplayName strips the trailing " #<number>" Jenkins appends to a build's full display name.
func jobDisplayName(full string, number int, fallback string) string {
	name := strings.TrimSuffix(full, " #"+strconv.Itoa(number))
	if name == "" {
		return fallback
	}
	return name
}

func convertCauses(infos []causeInfo) []model.Cause {
	causes := make([]model.Cause, 0, len(infos))
	for _, info := range infos {
		switch info.Class {
		case classSCMTrigger, classGitHubPush:
			causes = append(causes, model.SCMTrigger(htmlToText(info.ShortDescription)))
		case classUserIDCause:
			name := info.UserName
			if name == "" {
				name = info.UserID
			}
			causes = append(causes, model.UserTrigger(name))
		case classUpstreamTrigger:
			causes = append(causes, model.UpstreamTrigger(convertCauses(info.UpstreamCauses)...))
		default:
			causes = append(causes, model.Cause{Kind: model.CauseUnknown, ShortDescription: htmlToText(info.ShortDescription)})
		}
	}
	return causes
}

// htmlToText flattens the markup Jenkins sometimes embeds in cause descriptions.
func htmlToText(input string) string {
	if input == "" || !strings.ContainsAny(input, "<&") {
		return input
	}

	node, err := html.Parse(strings.NewReader(input))
	if err != nil {
		return input
	}

	var builder strings.Builder
	extractText(node, &builder)
	return strings.Join(strings.Fields(builder.String()), " ")
}

func extractText(node *html.Node, builder *strings.Builder) {
	if node.Type == html.TextNode {
		builder.WriteString(node.Data)
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		extractText(child, builder)
	}
}
