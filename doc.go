// branchless builds the smartlog view of a git repository: the subgraph of
// commits the user is actively working on, rooted where each line of work
// diverged from the main branch, with abandoned commits pruned away.
//
// See [MakeGraph] for the entry point and [CommitGraph] for the produced
// structure. Visibility of commits is supplied by an [EventReplayer] and
// merge-bases by a [MergeBaseDb]; implementations of both live in the
// eventlog and mergebase packages.
package branchless
