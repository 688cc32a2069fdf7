package modal

// ScrollLock prevents the page behind the modal from scrolling.
type ScrollLock interface {
	Acquire()
	Release()
}

// BodyScroll is the page's overflow state, rendered as overflow:hidden while locked.
type BodyScroll struct {
	locked   bool
	acquires int
	releases int
}

func (b *BodyScroll) Acquire() {
	b.locked = true
	b.acquires++
}

func (b *BodyScroll) Release() {
	b.locked = false
	b.releases++
}

func (b *BodyScroll) Locked() bool { return b.locked }

// Counts returns how many times the lock was taken and given back.
func (b *BodyScroll) Counts() (acquires, releases int) {
	return b.acquires, b.releases
}

// Overflow is the CSS overflow value for the document body.
func (b *BodyScroll) Overflow() string {
	if b.locked {
		return "hidden"
	}
	return "unset"
}
