// Package similarity finds pairs of objects with high Jaccard similarity.
//
// Objects are dense ids with sets of dense feature ids. BruteForce compares
// every pair exactly. LSH computes MinHash signatures with a universal hash
// family, groups objects into band buckets and confirms each candidate pair
// with exact similarity, so it never reports a pair BruteForce would reject.
package similarity
