package chat

// WithAPI allows tests to inject a mock Slack API client
var WithAPI = withAPI

// SlackTimestamp is exposed for tests
var SlackTimestamp = slackTimestamp
