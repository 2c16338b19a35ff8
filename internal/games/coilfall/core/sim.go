package core

import "fmt"

// Status is the lifecycle of one level run.
type Status uint8

const (
	StatusPlaying Status = iota
	StatusCompleted
)

func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusCompleted:
		return "completed"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// Input is the decoded player intent for one tick: at most one move
// direction, plus the undo and switch-control signals. How the intent
// was produced (keyboard, script, replay) is not the simulation's
// concern.
type Input struct {
	Direction *Vec3
	Undo      bool
	Switch    bool
}

// SnakeInfo is a read view of one snake for renderers and tests.
type SnakeInfo struct {
	Snake    *Snake
	Active   bool
	Falling  bool
	Exiting  bool
	Moving   bool
	Selected bool
}

// TriggerInfo is a read view of one trigger plate.
type TriggerInfo struct {
	Position Vec3
	Loaded   bool
}

type snakeState struct {
	snake    *Snake
	active   bool
	fall     *FallState
	exit     *exitState
	moving   bool
	moveLerp float64
	moveVel  float64
}

type exitState struct {
	remaining int
	initial   []SnakeElement
}

type boxState struct {
	box  *Box
	fall *FallState
}

type foodState struct {
	id       EntityID
	position Vec3
	active   bool
}

type triggerState struct {
	position Vec3
	loaded   bool
}

// Sim owns one level run: the occupancy grid, the move history, and
// every entity's state. It advances in fixed ticks, one pass order,
// single-threaded; all mutation flows through the Commands layer so
// the history can always rewind it.
type Sim struct {
	cfg     Config
	grid    *GridIndex
	history *History

	snakes   []*snakeState
	boxes    []*boxState
	foods    []*foodState
	triggers []*triggerState

	goalPosition Vec3
	hasGoal      bool
	goalActive   bool

	selected    int
	status      Status
	ticks       uint64
	moves       int
	undos       int
	playerUndos int

	pendingUndo bool
	events      []Event
}

// NewSim builds a level instance from a template. Spawn order is fixed
// (walls, foods, spikes, boxes, triggers, goal, snakes) so entity ids
// are reproducible for a given template.
func NewSim(template *LevelTemplate, cfg Config) (*Sim, error) {
	if err := template.Validate(); err != nil {
		return nil, err
	}

	s := &Sim{
		cfg:     cfg,
		grid:    NewGridIndex(),
		history: NewHistory(),
	}

	nextID := EntityID(1)
	spawn := func(kind EntityKind, pos Vec3) EntityID {
		id := nextID
		nextID++
		s.grid.MarkOccupied(pos, OccupantRef{ID: id, Kind: kind})
		return id
	}

	for _, order := range []EntityKind{KindWall, KindFood, KindSpike, KindBox, KindTrigger, KindGoal} {
		for _, e := range template.Entities {
			if e.Kind != order {
				continue
			}
			id := spawn(e.Kind, e.Position)
			switch e.Kind {
			case KindFood:
				s.foods = append(s.foods, &foodState{id: id, position: e.Position, active: true})
			case KindBox:
				s.boxes = append(s.boxes, &boxState{box: NewBox(id, e.Position)})
			case KindTrigger:
				s.triggers = append(s.triggers, &triggerState{position: e.Position})
			case KindGoal:
				s.goalPosition = e.Position
				s.hasGoal = true
			}
		}
	}

	for _, body := range template.Snakes {
		id := nextID
		nextID++
		snake := NewSnake(id, body)
		for _, pos := range snake.Positions() {
			s.grid.MarkOccupied(pos, snake.Ref())
		}
		s.snakes = append(s.snakes, &snakeState{snake: snake, active: true})
	}

	s.refreshTriggers()
	return s, nil
}

// Tick advances the simulation by one fixed step and returns the
// events it produced. Pass order: undo, switch control, movement,
// gravity, depth check, goal and exit handling, trigger refresh,
// animation progress, completion.
func (s *Sim) Tick(in Input, dt float64) []Event {
	s.events = s.events[:0]
	if s.status != StatusPlaying {
		return s.events
	}
	s.ticks++

	if s.pendingUndo {
		s.pendingUndo = false
		s.applyUndo(true)
	} else if in.Undo && !s.AnyFalling() && s.undoAllowed() {
		s.applyUndo(false)
	}

	if in.Switch && !s.AnyFalling() {
		s.selectNext()
	}

	if in.Direction != nil {
		s.moveControl(*in.Direction)
	}

	s.gravityPass(dt)
	s.depthPass()
	s.checkGoal()
	s.exitAnimPass()
	s.refreshTriggers()
	s.advanceMoveAnims(dt)
	s.checkCompletion()

	return s.events
}

// moveControl resolves one direction intent against the selected
// snake: reversal is ignored, the input direction is tried first and
// rising second, a standing snake told to rise hops instead, and a
// blocked move commits nothing at all.
func (s *Sim) moveControl(direction Vec3) {
	st := s.selectedState()
	if st == nil || !st.active || st.moving || st.fall != nil || st.exit != nil {
		return
	}
	snake := st.snake

	if direction == snake.HeadDirection().Neg() {
		return
	}

	for _, dir := range []Vec3{direction, Up} {
		newPos := snake.HeadPosition().Add(dir)

		if dir == Up && snake.IsStanding() && !s.grid.IsFood(newPos) && !s.isActiveGoal(newPos) {
			st.fall = &FallState{Velocity: s.cfg.JumpVelocity}
			return
		}

		if s.grid.IsEntity(newPos, snake.ID()) {
			continue
		}

		pushedRef, hasPushed := s.grid.IsMovable(newPos)
		var pushed Movable
		if hasPushed {
			pushed = s.movableByRef(pushedRef)
		}

		if !s.canMoveForward(snake, pushed, pushedRef, dir) {
			continue
		}

		s.commitMove(st, dir, newPos, pushed, pushedRef)
		return
	}
}

func (s *Sim) canMoveForward(snake *Snake, pushed Movable, pushedRef OccupantRef, direction Vec3) bool {
	if pushed != nil {
		return s.grid.CanPushEntity(pushedRef.ID, pushed.Positions(), direction)
	}
	newPos := snake.HeadPosition().Add(direction)
	if snake.OccupiesPosition(newPos) || !s.grid.CanWalkOrEat(newPos) {
		return false
	}
	return true
}

func (s *Sim) commitMove(st *snakeState, direction, newPos Vec3, pushed Movable, pushedRef OccupantRef) {
	snake := st.snake
	food := s.activeFoodAt(newPos)

	cmd := NewCommands(s.grid, s.history).PlayerMove(snake, direction)
	if pushed != nil {
		cmd.PushingEntity(pushedRef, pushed)
	}
	if food != nil {
		cmd.EatingFood(food.position)
	}
	cmd.Execute()

	if food != nil {
		food.active = false
	}

	st.moving = true
	st.moveLerp = 0
	st.moveVel = s.cfg.MoveVelocity
	s.moves++

	s.emit(Event{Kind: EvSnakeMoved, Entity: snake.Ref(), Position: snake.HeadPosition()})
	if pushed != nil {
		s.emit(Event{Kind: EvEntityPushed, Entity: pushedRef, Position: newPos})
	}
	if food != nil {
		s.emit(Event{Kind: EvFoodEaten, Entity: OccupantRef{ID: food.id, Kind: KindFood}, Position: food.position})
		s.emit(Event{Kind: EvSnakeGrew, Entity: snake.Ref(), Position: snake.TailPosition()})
	}
}

// gravityPass integrates every airborne movable and starts falls for
// unsupported ones. The selected snake resolves first, remaining
// snakes and then boxes follow in spawn order, so stacked falls play
// out the same way every run.
func (s *Sim) gravityPass(dt float64) {
	sel := s.selectedState()
	if sel != nil {
		s.gravitySnake(sel, dt)
	}
	for _, st := range s.snakes {
		if st != sel {
			s.gravitySnake(st, dt)
		}
	}
	for _, bs := range s.boxes {
		bs.fall = s.gravityStep(bs.box, bs.box.Ref(), bs.fall, false, dt)
	}
}

func (s *Sim) gravitySnake(st *snakeState, dt float64) {
	if !st.active || st.exit != nil {
		return
	}
	st.fall = s.gravityStep(st.snake, st.snake.Ref(), st.fall, true, dt)
}

// gravityStep advances one movable's fall state machine and returns
// the state it carries into the next tick (nil when grounded).
func (s *Sim) gravityStep(m Movable, ref OccupantRef, fall *FallState, isSnake bool, dt float64) *FallState {
	cmds := NewCommands(s.grid, s.history)

	if fall == nil {
		if s.minDistanceToGround(m, ref.ID) <= 1 {
			return nil
		}
		cmds.StartFalling(m, ref)
		m.Translate(Down)
		s.emit(Event{Kind: EvFallStarted, Entity: ref, Position: m.Positions()[0]})
		return &FallState{RelativeY: 1.0, GridDistance: 1}
	}

	if !fall.step(s.cfg.Gravity, dt) {
		return fall
	}

	if isSnake && s.overlapsSpike(m) {
		cmds.StopFallingOnSpikes(ref)
		s.pendingUndo = true
		s.emit(Event{Kind: EvLandedOnSpikes, Entity: ref, Position: m.Positions()[0]})
		return nil
	}

	if s.minDistanceToGround(m, ref.ID) > 1 {
		fall.continueFall()
		m.Translate(Down)
		return fall
	}

	if fall.GridDistance == 0 {
		// A hop that came back down where it started; nothing moved in
		// grid terms, so there is nothing to log.
		return nil
	}

	cmds.StopFalling(m, ref)
	s.emit(Event{Kind: EvFallLanded, Entity: ref, Position: m.Positions()[0], Distance: fall.GridDistance})
	return nil
}

// depthPass rewinds snakes that fell off the world.
func (s *Sim) depthPass() {
	for _, st := range s.snakes {
		if st.fall == nil || st.snake.HeadPosition().Y >= s.cfg.FallDepth {
			continue
		}
		NewCommands(s.grid, s.history).StopFalling(st.snake, st.snake.Ref())
		st.fall = nil
		s.pendingUndo = true
		s.emit(Event{Kind: EvFellOffWorld, Entity: st.snake.Ref(), Position: st.snake.HeadPosition()})
	}
}

// checkGoal starts the exit of any active, grounded snake whose head
// reached the active goal.
func (s *Sim) checkGoal() {
	if !s.hasGoal || !s.goalActive {
		return
	}
	for _, st := range s.snakes {
		if !st.active || st.fall != nil || st.exit != nil {
			continue
		}
		if st.snake.HeadPosition() != s.goalPosition {
			continue
		}
		NewCommands(s.grid, s.history).ExitLevel(st.snake, false)
		st.exit = &exitState{
			remaining: st.snake.Len(),
			initial:   append([]SnakeElement(nil), st.snake.Parts()...),
		}
		s.emit(Event{Kind: EvSnakeReachedGoal, Entity: st.snake.Ref(), Position: s.goalPosition})
	}
}

// exitAnimPass burrows exiting snakes into the goal one cell per
// completed move animation, then restores their geometry and retires
// them from play.
func (s *Sim) exitAnimPass() {
	for i, st := range s.snakes {
		if st.exit == nil || st.moving {
			continue
		}
		st.exit.remaining--
		if st.exit.remaining < 0 {
			st.snake.SetParts(st.exit.initial)
			st.exit = nil
			st.active = false
			s.emit(Event{Kind: EvSnakeExitedLevel, Entity: st.snake.Ref()})
			if s.selected == i {
				s.selectNext()
			}
			continue
		}
		st.moving = true
		st.moveLerp = 0
		st.moveVel = 1.5 * s.cfg.MoveVelocity
		st.snake.MoveForward(Down)
	}
}

// refreshTriggers derives plate and goal state from occupancy. The
// derived state is deliberately not part of history: undo restores the
// grid and the plates follow on the next refresh.
func (s *Sim) refreshTriggers() {
	allLoaded := true
	for _, tr := range s.triggers {
		_, loaded := s.grid.IsMovable(tr.position)
		tr.loaded = loaded
		if !loaded {
			allLoaded = false
		}
	}
	s.goalActive = s.hasGoal && allLoaded
}

func (s *Sim) advanceMoveAnims(dt float64) {
	for _, st := range s.snakes {
		if !st.moving {
			continue
		}
		st.moveLerp += st.moveVel * dt
		if st.moveLerp > 1.0 {
			st.moving = false
		}
	}
}

func (s *Sim) checkCompletion() {
	if s.status != StatusPlaying || len(s.snakes) == 0 {
		return
	}
	for _, st := range s.snakes {
		if st.active {
			return
		}
	}
	s.status = StatusCompleted
	s.emit(Event{Kind: EvLevelCompleted})
}

// applyUndo rewinds one player turn against the live entity set. Forced
// rewinds bypass and do not consume the explicit undo budget.
func (s *Sim) applyUndo(forced bool) {
	if s.history.Empty() {
		return
	}
	registry := NewMovableRegistry()
	for _, st := range s.snakes {
		registry.Add(st.snake.Ref(), st.snake)
	}
	for _, bs := range s.boxes {
		registry.Add(bs.box.Ref(), bs.box)
	}
	s.history.UndoLast(s.grid, registry, s)
	s.undos++
	if !forced {
		s.playerUndos++
	}
	s.emit(Event{Kind: EvUndoApplied})
}

func (s *Sim) undoAllowed() bool {
	return s.cfg.UndoLimit == 0 || s.playerUndos < s.cfg.UndoLimit
}

// RespawnFood implements UndoHooks.
func (s *Sim) RespawnFood(position Vec3) {
	for _, f := range s.foods {
		if !f.active && f.position == position {
			f.active = true
			s.emit(Event{Kind: EvFoodRespawned, Entity: OccupantRef{ID: f.id, Kind: KindFood}, Position: position})
			return
		}
	}
	panic(fmt.Sprintf("sim: no eaten food at %v to respawn", position))
}

// DespawnSegment implements UndoHooks.
func (s *Sim) DespawnSegment(snake OccupantRef) {
	s.emit(Event{Kind: EvSegmentDespawned, Entity: snake})
}

// Reactivate implements UndoHooks. A snake still mid-exit gets its
// pre-exit geometry back so the rest of the rewind operates on the
// shape the history events were recorded against.
func (s *Sim) Reactivate(entity OccupantRef) {
	for _, st := range s.snakes {
		if st.snake.Ref() != entity {
			continue
		}
		if st.exit != nil {
			st.snake.SetParts(st.exit.initial)
			st.exit = nil
		}
		st.active = true
		return
	}
	panic(fmt.Sprintf("sim: cannot reactivate unknown entity %v", entity))
}

func (s *Sim) selectedState() *snakeState {
	if s.selected < 0 || s.selected >= len(s.snakes) {
		return nil
	}
	st := s.snakes[s.selected]
	if !st.active {
		return nil
	}
	return st
}

// selectNext moves selection to the next active snake, wrapping
// around; with none left the selection goes stale and completion
// handles the rest.
func (s *Sim) selectNext() {
	n := len(s.snakes)
	for step := 1; step <= n; step++ {
		i := (s.selected + step) % n
		if s.snakes[i].active && s.snakes[i].exit == nil {
			if i != s.selected {
				s.selected = i
				s.emit(Event{Kind: EvSnakeSelected, Entity: s.snakes[i].snake.Ref()})
			}
			return
		}
	}
}

func (s *Sim) minDistanceToGround(m Movable, id EntityID) int {
	minDist := BottomlessDistance
	for _, pos := range m.Positions() {
		if d := s.grid.DistanceToGround(pos, id); d < minDist {
			minDist = d
		}
	}
	return minDist
}

func (s *Sim) overlapsSpike(m Movable) bool {
	for _, pos := range m.Positions() {
		if s.grid.IsSpike(pos) {
			return true
		}
	}
	return false
}

func (s *Sim) activeFoodAt(position Vec3) *foodState {
	for _, f := range s.foods {
		if f.active && f.position == position {
			return f
		}
	}
	return nil
}

func (s *Sim) movableByRef(ref OccupantRef) Movable {
	switch ref.Kind {
	case KindSnake:
		for _, st := range s.snakes {
			if st.snake.ID() == ref.ID {
				return st.snake
			}
		}
	case KindBox:
		for _, bs := range s.boxes {
			if bs.box.ID() == ref.ID {
				return bs.box
			}
		}
	}
	panic(fmt.Sprintf("sim: unknown movable %v", ref))
}

func (s *Sim) isActiveGoal(position Vec3) bool {
	return s.hasGoal && s.goalActive && s.goalPosition == position
}

func (s *Sim) emit(ev Event) {
	s.events = append(s.events, ev)
}

// UndoPending reports whether a forced rewind is queued for the next
// tick.
func (s *Sim) UndoPending() bool {
	return s.pendingUndo
}

// AnyFalling reports whether any movable is airborne.
func (s *Sim) AnyFalling() bool {
	for _, st := range s.snakes {
		if st.fall != nil {
			return true
		}
	}
	for _, bs := range s.boxes {
		if bs.fall != nil {
			return true
		}
	}
	return false
}

// Grid exposes the occupancy index for rendering and tests.
func (s *Sim) Grid() *GridIndex {
	return s.grid
}

// History exposes the move history for inspection.
func (s *Sim) History() *History {
	return s.history
}

// Status returns the run's lifecycle state.
func (s *Sim) Status() Status {
	return s.status
}

// Ticks returns the number of advanced ticks.
func (s *Sim) Ticks() uint64 {
	return s.ticks
}

// Moves returns the number of committed player moves.
func (s *Sim) Moves() int {
	return s.moves
}

// Undos returns the number of applied rewinds, forced ones included.
func (s *Sim) Undos() int {
	return s.undos
}

// Config returns the run's tuning.
func (s *Sim) Config() Config {
	return s.cfg
}

// SelectedSnake returns the snake under player control, nil when none.
func (s *Sim) SelectedSnake() *Snake {
	st := s.selectedState()
	if st == nil {
		return nil
	}
	return st.snake
}

// SnakeInfos returns a read view of all snakes in spawn order.
func (s *Sim) SnakeInfos() []SnakeInfo {
	infos := make([]SnakeInfo, 0, len(s.snakes))
	for i, st := range s.snakes {
		infos = append(infos, SnakeInfo{
			Snake:    st.snake,
			Active:   st.active,
			Falling:  st.fall != nil,
			Exiting:  st.exit != nil,
			Moving:   st.moving,
			Selected: i == s.selected,
		})
	}
	return infos
}

// Boxes returns the box entities in spawn order.
func (s *Sim) Boxes() []*Box {
	boxes := make([]*Box, 0, len(s.boxes))
	for _, bs := range s.boxes {
		boxes = append(boxes, bs.box)
	}
	return boxes
}

// TriggerInfos returns a read view of all trigger plates.
func (s *Sim) TriggerInfos() []TriggerInfo {
	infos := make([]TriggerInfo, 0, len(s.triggers))
	for _, tr := range s.triggers {
		infos = append(infos, TriggerInfo{Position: tr.position, Loaded: tr.loaded})
	}
	return infos
}

// Goal returns the goal cell and whether the level has one.
func (s *Sim) Goal() (Vec3, bool) {
	return s.goalPosition, s.hasGoal
}

// GoalActive reports whether every trigger plate is loaded.
func (s *Sim) GoalActive() bool {
	return s.goalActive
}

// FoodsRemaining counts uneaten food items.
func (s *Sim) FoodsRemaining() int {
	n := 0
	for _, f := range s.foods {
		if f.active {
			n++
		}
	}
	return n
}
