/*
Package ports defines the driven ports (interfaces) for the SlideKit runtime.

These interfaces decouple the transition core from its hosting environment, allowing
the same deck logic to drive a terminal presenter, a remote control, or a test harness.

# Key Interfaces

  - ClassSet: The class list of a slide node (add, remove, has).
  - NodeFactory: Creates the ClassSet backing each slide in a given environment.
  - DeckLoader: Responsible for loading slide definitions (e.g., from Loam or Memory).
  - SnapshotStore: Responsible for persisting and loading presentation snapshots.
  - Deck: The remote-controllable surface of a running presentation (HTTP, MCP, keyboard).
*/
package ports
