// Package github fetches the repositories shown in the projects section.
//
// Fetcher tries three tiers in order and stops at the first one that yields
// at least one repository:
//
//  1. PinnedTier: the user's pinned repositories from the GraphQL API.
//     The request is unauthenticated and GitHub answers 401, so in practice
//     this tier fails fast and hands over to the next one.
//  2. FeaturedTier: one REST lookup per configured repository name, issued
//     concurrently. A failed lookup drops that name only.
//  3. RecentTier: the user's most recently updated repositories.
//
// Whatever tier answers, the records are normalized to model.RepoRecord.
// Fetch returns an error only when every tier failed.
package github
