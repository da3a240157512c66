package domain

// Queue holds the tracks of a guild player using an index-based model.
// Played tracks are kept so that queue looping can wrap to the start.
// The queue is not safe for concurrent use; its owner serializes access.
type Queue struct {
	tracks  []*Track
	index   int
	playing bool // whether tracks[index] is the current track
}

// NewQueue creates a new empty Queue.
func NewQueue() *Queue {
	return &Queue{tracks: make([]*Track, 0)}
}

// Len returns the total number of tracks held, played ones included.
func (q *Queue) Len() int {
	return len(q.tracks)
}

// IsEmpty returns true if the queue has no tracks.
func (q *Queue) IsEmpty() bool {
	return q.Len() == 0
}

// Current returns the track that is currently selected for playback,
// or nil if the queue is idle.
func (q *Queue) Current() *Track {
	if !q.playing {
		return nil
	}
	return q.tracks[q.index]
}

// Index returns the position of the current track, or of the next track to
// start while idle.
func (q *Queue) Index() int {
	return q.index
}

// Upcoming returns a copy of the tracks that will play after the current one.
func (q *Queue) Upcoming() []*Track {
	start := q.index
	if q.playing {
		start++
	}
	if start >= q.Len() {
		return []*Track{}
	}
	result := make([]*Track, q.Len()-start)
	copy(result, q.tracks[start:])
	return result
}

// UpcomingLen returns the number of tracks after the current one.
func (q *Queue) UpcomingLen() int {
	start := q.index
	if q.playing {
		start++
	}
	if start >= q.Len() {
		return 0
	}
	return q.Len() - start
}

// Append adds tracks to the end of the queue.
func (q *Queue) Append(tracks ...*Track) {
	q.tracks = append(q.tracks, tracks...)
}

// Start selects the next unplayed track when the queue is idle.
// Returns the current track, or nil if there is nothing left to play.
func (q *Queue) Start() *Track {
	if q.playing {
		return q.tracks[q.index]
	}
	if q.index >= q.Len() {
		return nil
	}
	q.playing = true
	return q.tracks[q.index]
}

// Advance moves past the current track according to the loop mode.
// Returns the new current track, or nil if the queue ended.
//   - LoopModeOff: advance, go idle past the end
//   - LoopModeTrack: stay on the same track
//   - LoopModeQueue: advance, wrap to 0 past the end
func (q *Queue) Advance(mode LoopMode) *Track {
	if !q.playing {
		return nil
	}

	switch mode.Normalize() {
	case LoopModeTrack:
		return q.tracks[q.index]
	case LoopModeQueue:
		q.index = (q.index + 1) % q.Len()
		return q.tracks[q.index]
	default:
		q.index++
		if q.index >= q.Len() {
			q.playing = false
			return nil
		}
		return q.tracks[q.index]
	}
}

// Skip moves past the current track on user request. Track looping does not
// hold the queue on the same track; queue looping still wraps.
func (q *Queue) Skip(mode LoopMode) *Track {
	if mode.Normalize() == LoopModeTrack {
		mode = LoopModeOff
	}
	return q.Advance(mode)
}

// RemoveAt drops the track at index and returns it, or nil if index is out
// of range. When the current track is removed the following track becomes
// current; past the end the queue goes idle.
func (q *Queue) RemoveAt(index int) *Track {
	if index < 0 || index >= q.Len() {
		return nil
	}

	track := q.tracks[index]
	q.tracks = append(q.tracks[:index], q.tracks[index+1:]...)

	switch {
	case q.IsEmpty():
		q.index = 0
		q.playing = false
	case index < q.index:
		q.index--
	case index == q.index && q.index >= q.Len():
		q.playing = false
	}
	return track
}

// Halt returns the queue to idle without discarding anything. The next
// Start selects the same track again.
func (q *Queue) Halt() {
	q.playing = false
}

// Clear removes all tracks and returns the queue to idle.
func (q *Queue) Clear() {
	q.tracks = make([]*Track, 0)
	q.index = 0
	q.playing = false
}
