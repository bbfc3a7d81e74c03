// Package domain defines the review-moderation types and the capability
// interfaces the application layer depends on.
//
// No implementation code, just contracts. Adapters (Comprehend, SNS) satisfy
// the interfaces; app.Service consumes them.
package domain
