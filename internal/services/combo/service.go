package combo

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pugroyal/pugroyal-go/internal/model"
)

// Combination size bounds
const (
	minComboSize = 3
	maxComboSize = 5
)

// Service detects scoreable combinations on a board.
// A combination is a connected group of 3-5 unflipped tiles sharing a color
// or a symbol, in one of the allowed shapes.
type Service struct{}

// New creates a new combination finder
func New() *Service {
	return &Service{}
}

// FindByColor finds all valid same-color combinations on the board
func (s *Service) FindByColor(board *model.Board) []model.Combination {
	return s.find(board, model.AttributeColor)
}

// FindBySymbol finds all valid same-symbol combinations on the board
func (s *Service) FindBySymbol(board *model.Board) []model.Combination {
	return s.find(board, model.AttributeSymbol)
}

// FindAll finds every settleable combination across both attributes
func (s *Service) FindAll(board *model.Board) []model.Combination {
	result := s.FindByColor(board)
	return append(result, s.FindBySymbol(board)...)
}

// find locates connected same-attribute groups and enumerates every valid
// 3-5 tile subshape within each group. Groups larger than 5 are not
// skipped; all their valid subsets are surfaced so the player can choose
// between scoring options. Combinations with no flippable tile cannot be
// settled and are not emitted.
func (s *Service) find(board *model.Board, attr model.CombinationAttribute) []model.Combination {
	var result []model.Combination
	visited := map[model.Position]bool{}

	// Seeds follow placement order so results are deterministic
	for _, start := range board.Positions() {
		if visited[start] {
			continue
		}
		tile, _ := board.TileAt(start)
		if tile.Flipped {
			continue
		}

		group := connectedGroup(board, start, attr)
		for pos := range group {
			visited[pos] = true
		}
		if len(group) < minComboSize {
			continue
		}

		for _, positions := range validSubcombinations(group) {
			flippable := Flippables(positions)
			if len(flippable) == 0 {
				continue
			}
			result = append(result, model.Combination{
				Attribute: attr,
				Positions: positions,
				Flippable: flippable,
			})
		}
	}

	return result
}

// Flippables returns the positions a player may flip when settling the
// given combination, in canonical order. Where the rules allow a choice
// between equally ranked tiles, the topmost-leftmost wins.
//
// Rules by shape:
//   - size <= 2: nothing is flippable
//   - straight chain of 5: only the geometric center
//   - pure diagonal, odd size: the tile with the most diagonal neighbors
//   - pure diagonal, size 4: the two tiles with the most diagonal neighbors
//   - mixed, odd size: the tile with the most orthogonal neighbors
//   - mixed, size 4: every tile with at least 2 orthogonal neighbors
func Flippables(positions []model.Position) []model.Position {
	if len(positions) <= 2 {
		return nil
	}

	members := toSet(positions)
	sorted := canonical(positions)

	pureDiagonal := true
	for _, pos := range sorted {
		if countOrthogonal(pos, members) > 0 {
			pureDiagonal = false
			break
		}
	}

	odd := len(positions)%2 == 1
	switch {
	case !pureDiagonal && odd:
		return topNeighborCounted(sorted, members, 1, countOrthogonal)
	case !pureDiagonal:
		return atLeastTwoOrthogonal(sorted, members)
	case odd:
		return topNeighborCounted(sorted, members, 1, countDiagonal)
	default:
		return topNeighborCounted(sorted, members, 2, countDiagonal)
	}
}

// connectedGroup flood-fills from start across all 8 directions, collecting
// unflipped tiles that share the start tile's attribute value
func connectedGroup(board *model.Board, start model.Position, attr model.CombinationAttribute) map[model.Position]bool {
	reference, ok := board.TileAt(start)
	if !ok || reference.Flipped {
		return nil
	}

	group := map[model.Position]bool{}
	stack := []model.Position{start}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if group[current] {
			continue
		}

		tile, ok := board.TileAt(current)
		if !ok || tile.Flipped {
			continue
		}
		if attr == model.AttributeColor {
			if tile.Color != reference.Color {
				continue
			}
		} else if tile.Symbol != reference.Symbol {
			continue
		}

		group[current] = true
		for _, n := range current.AllNeighbors() {
			if !group[n] {
				stack = append(stack, n)
			}
		}
	}

	return group
}

// validSubcombinations enumerates all connected, valid subsets of sizes
// 3..5 within a group, deduplicated, in canonical member order
func validSubcombinations(group map[model.Position]bool) [][]model.Position {
	positions := canonical(keys(group))

	var result [][]model.Position
	seen := map[string]bool{}
	for size := minComboSize; size <= maxComboSize && size <= len(positions); size++ {
		forEachSubset(positions, size, func(subset []model.Position) {
			members := toSet(subset)
			if !isConnected(subset, members) || !isValidShape(subset, members) {
				return
			}
			key := comboKey(subset)
			if seen[key] {
				return
			}
			seen[key] = true
			result = append(result, append([]model.Position(nil), subset...))
		})
	}

	return result
}

// forEachSubset invokes fn with every k-element subset of positions.
// Subsets are generated by advancing an index vector, so members keep the
// input order and no recursion depth is involved.
func forEachSubset(positions []model.Position, k int, fn func([]model.Position)) {
	n := len(positions)
	if k > n {
		return
	}

	indices := make([]int, k)
	for i := range indices {
		indices[i] = i
	}
	subset := make([]model.Position, k)

	for {
		for i, idx := range indices {
			subset[i] = positions[idx]
		}
		fn(subset)

		// Advance the rightmost index that can still move
		i := k - 1
		for i >= 0 && indices[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		indices[i]++
		for j := i + 1; j < k; j++ {
			indices[j] = indices[j-1] + 1
		}
	}
}

// isConnected checks 8-neighborhood connectivity of the subset by BFS
func isConnected(subset []model.Position, members map[model.Position]bool) bool {
	if len(subset) <= 1 {
		return true
	}

	visited := map[model.Position]bool{subset[0]: true}
	queue := []model.Position{subset[0]}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, n := range current.AllNeighbors() {
			if members[n] && !visited[n] {
				visited[n] = true
				queue = append(queue, n)
			}
		}
	}

	return len(visited) == len(subset)
}

// isValidShape applies the geometric combination rules
func isValidShape(subset []model.Position, members map[model.Position]bool) bool {
	size := len(subset)
	if size < minComboSize || size > maxComboSize {
		return false
	}

	pureDiagonal := true
	for _, pos := range subset {
		if countOrthogonal(pos, members) > 0 {
			pureDiagonal = false
			break
		}
	}
	if pureDiagonal {
		return isStraightDiagonalRun(subset)
	}

	// Mixed shapes: diagonal-only outliers are not allowed
	for _, pos := range subset {
		if countOrthogonal(pos, members) == 0 {
			return false
		}
	}

	height, width := boundingDims(subset)

	if size == 4 && height < 3 && width < 3 {
		return false
	}
	if size == 5 {
		straight := (height == 1 && width == 5) || (height == 5 && width == 1)
		if !straight {
			if (height == 4 && width >= 3) || (width == 4 && height >= 3) {
				return false
			}
			if height > 4 || width > 4 {
				return false
			}
		}
	}

	compactness := float64(size) / float64(height*width)
	if compactness < 0.5 {
		return false
	}

	// Iteratively strip tiles hanging on by a single diagonal; a shape that
	// loses any member this way is invalid.
	if pruneWeakMembers(members) != size {
		return false
	}

	if size == 3 && compactness < 1.0 {
		return isLShape(subset, members)
	}
	return true
}

// isStraightDiagonalRun reports whether the members form one straight
// diagonal line. Members are assumed to be in canonical order, so every
// consecutive step must be the same unit diagonal.
func isStraightDiagonalRun(subset []model.Position) bool {
	if len(subset) < 2 {
		return true
	}

	dr := subset[1].Row - subset[0].Row
	dc := subset[1].Col - subset[0].Col
	if abs(dr) != 1 || abs(dc) != 1 {
		return false
	}
	for i := 1; i < len(subset)-1; i++ {
		if subset[i+1].Row-subset[i].Row != dr || subset[i+1].Col-subset[i].Col != dc {
			return false
		}
	}
	return true
}

// isLShape reports whether a 3-tile shape is an L: exactly one corner tile
// with 2 orthogonal neighbors, and the tiles not all in one row or column
func isLShape(subset []model.Position, members map[model.Position]bool) bool {
	corners := 0
	for _, pos := range subset {
		if countOrthogonal(pos, members) == 2 {
			corners++
		}
	}
	if corners != 1 {
		return false
	}

	sameRow, sameCol := true, true
	for _, pos := range subset[1:] {
		if pos.Row != subset[0].Row {
			sameRow = false
		}
		if pos.Col != subset[0].Col {
			sameCol = false
		}
	}
	return !sameRow && !sameCol
}

// pruneWeakMembers iteratively removes members with 0 orthogonal and
// exactly 1 diagonal neighbor, returning the surviving count.
// The input set is not modified.
func pruneWeakMembers(members map[model.Position]bool) int {
	remaining := make(map[model.Position]bool, len(members))
	for pos := range members {
		remaining[pos] = true
	}

	for {
		var toRemove []model.Position
		for pos := range remaining {
			if countOrthogonal(pos, remaining) == 0 && countDiagonal(pos, remaining) == 1 {
				toRemove = append(toRemove, pos)
			}
		}
		if len(toRemove) == 0 {
			return len(remaining)
		}
		for _, pos := range toRemove {
			delete(remaining, pos)
		}
	}
}

// topNeighborCounted returns up to n members holding the maximum neighbor
// count, scanning in the given (canonical) order
func topNeighborCounted(sorted []model.Position, members map[model.Position]bool, n int, count func(model.Position, map[model.Position]bool) int) []model.Position {
	// A straight chain of 5 has three tiles with 2 neighbors each; only
	// the geometric center may be flipped.
	if len(sorted) == 5 && n == 1 && isLinearChain(sorted, members, count) {
		return []model.Position{geometricCenter(sorted)}
	}

	maxNeighbors := 0
	for _, pos := range sorted {
		if c := count(pos, members); c > maxNeighbors {
			maxNeighbors = c
		}
	}

	var result []model.Position
	for _, pos := range sorted {
		if count(pos, members) == maxNeighbors {
			result = append(result, pos)
			if len(result) == n {
				break
			}
		}
	}
	return result
}

// atLeastTwoOrthogonal returns every member with 2+ orthogonal neighbors
func atLeastTwoOrthogonal(sorted []model.Position, members map[model.Position]bool) []model.Position {
	var result []model.Position
	for _, pos := range sorted {
		if countOrthogonal(pos, members) >= 2 {
			result = append(result, pos)
		}
	}
	return result
}

// isLinearChain reports whether the members form an unbranched chain under
// the given adjacency: exactly two endpoints with 1 neighbor, the rest
// with exactly 2
func isLinearChain(subset []model.Position, members map[model.Position]bool, count func(model.Position, map[model.Position]bool) int) bool {
	endpoints, middle := 0, 0
	for _, pos := range subset {
		switch count(pos, members) {
		case 1:
			endpoints++
		case 2:
			middle++
		default:
			return false
		}
	}
	return endpoints == 2 && middle == len(subset)-2
}

// geometricCenter returns the member minimizing total Manhattan distance
// to all other members. Scanning in canonical order breaks ties toward
// the topmost-leftmost candidate.
func geometricCenter(sorted []model.Position) model.Position {
	center := sorted[0]
	minTotal := -1
	for _, candidate := range sorted {
		total := 0
		for _, other := range sorted {
			total += candidate.ManhattanDistance(other)
		}
		if minTotal < 0 || total < minTotal {
			minTotal = total
			center = candidate
		}
	}
	return center
}

func countOrthogonal(pos model.Position, members map[model.Position]bool) int {
	count := 0
	for _, n := range pos.OrthogonalNeighbors() {
		if members[n] {
			count++
		}
	}
	return count
}

func countDiagonal(pos model.Position, members map[model.Position]bool) int {
	count := 0
	for _, n := range pos.DiagonalNeighbors() {
		if members[n] {
			count++
		}
	}
	return count
}

func boundingDims(subset []model.Position) (height, width int) {
	minRow, maxRow := subset[0].Row, subset[0].Row
	minCol, maxCol := subset[0].Col, subset[0].Col
	for _, pos := range subset[1:] {
		if pos.Row < minRow {
			minRow = pos.Row
		}
		if pos.Row > maxRow {
			maxRow = pos.Row
		}
		if pos.Col < minCol {
			minCol = pos.Col
		}
		if pos.Col > maxCol {
			maxCol = pos.Col
		}
	}
	return maxRow - minRow + 1, maxCol - minCol + 1
}

func canonical(positions []model.Position) []model.Position {
	sorted := append([]model.Position(nil), positions...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })
	return sorted
}

func comboKey(sorted []model.Position) string {
	var sb strings.Builder
	for _, pos := range sorted {
		fmt.Fprintf(&sb, "%d,%d;", pos.Row, pos.Col)
	}
	return sb.String()
}

func toSet(positions []model.Position) map[model.Position]bool {
	set := make(map[model.Position]bool, len(positions))
	for _, pos := range positions {
		set[pos] = true
	}
	return set
}

func keys(set map[model.Position]bool) []model.Position {
	result := make([]model.Position, 0, len(set))
	for pos := range set {
		result = append(result, pos)
	}
	return result
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Interface for dependency injection
type ServiceInterface interface {
	FindByColor(board *model.Board) []model.Combination
	FindBySymbol(board *model.Board) []model.Combination
	FindAll(board *model.Board) []model.Combination
}

var _ ServiceInterface = (*Service)(nil)
