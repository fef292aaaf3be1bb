package errors

import "fmt"

// Common error messages for the ghscripts CLI.

// MissingToken creates an error for a missing GitHub token.
func MissingToken() *CLIError {
	return NewConfigError(
		"GitHub token is not set",
		"Pass the workflow token to the step: env: GITHUB_TOKEN: ${{ secrets.GITHUB_TOKEN }}",
		"Or use --token when running locally",
	)
}

// MissingRepository creates an error when the target repository is unknown.
func MissingRepository() *CLIError {
	return NewConfigError(
		"repository is not set",
		"Run inside GitHub Actions, where GITHUB_REPOSITORY is provided",
		"Or pass --repo owner/name",
	)
}

// InvalidRepository creates an error for a malformed owner/name value.
func InvalidRepository(value string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("invalid repository %q", value),
		"ghscripts <command> --repo owner/name",
		"Use the owner/name form, e.g. octo-org/octo-repo",
	)
}

// MissingIssueNumber creates an error when a notification has no target.
func MissingIssueNumber() *CLIError {
	return NewArgumentErrorWithUsage(
		"no issue or pull request number in the event payload",
		"ghscripts notify --issue <number>",
		"Trigger the workflow from an issue or pull_request event",
		"Or pass the target explicitly with --issue",
	)
}

// MissingPullRequest creates an error when a review has no pull request.
func MissingPullRequest() *CLIError {
	return NewArgumentErrorWithUsage(
		"no pull request number in the event payload",
		"ghscripts review --pr <number>",
		"Run the review on a pull_request event",
		"Or pass the pull request explicitly with --pr",
	)
}

// MissingTag creates an error when no release tag is known.
func MissingTag() *CLIError {
	return NewArgumentErrorWithUsage(
		"release tag is not set",
		"ghscripts changelog --tag <tag>",
		"Run on a tag push, where GITHUB_REF is refs/tags/<tag>",
		"Or pass the tag explicitly with --tag",
	)
}

// ProviderFailure wraps a failed remote call.
func ProviderFailure(err error) *CLIError {
	return WrapWithMessage(err, Provider, "GitHub request failed",
		"Check that the token has the required permissions (issues, actions, contents)",
		"Re-run the job; requests are not retried",
	)
}
