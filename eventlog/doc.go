// eventlog records the user actions a repository accumulates (commits,
// hides, rewrites, ref moves) and replays them to answer the visibility
// queries the smartlog graph needs.
package eventlog
