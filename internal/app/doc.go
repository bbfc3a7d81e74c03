// Package app provides the review moderation use case.
//
// Service.SubmitReview decodes and validates a submission, classifies it, and
// publishes a notification for negative reviews. It is transport-agnostic: the
// echo server and the Lambda adapter both render its Outcome or error.
package app
