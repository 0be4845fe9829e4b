// Package puzzle holds the letter-placement board of the game.
//
// A Board is built once per creature name by Setup:
//   - one GuideSlot per letter, in name order, on a row under the image box
//   - one LetterTile per letter at a random spawn cell
//
// Tiles are dragged with Move and dropped with Resolve, which either snaps the
// tile into the first compatible unfilled slot or sends it back to its spawn
// cell. Placed tiles and filled slots are final.
//
// All coordinates are terminal cells with the origin at the top-left corner.
// Board is not safe for concurrent use; the game loop owns it.
package puzzle
