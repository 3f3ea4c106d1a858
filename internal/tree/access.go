// Copyright 2019 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tree

// skipIgnore walks past the left/right ignore header kids, if present.
func skipIgnore(t *Tree, kid *Kid) *Kid {
	if t.Flags&LeftIgnore != 0 {
		kid = kid.Next
	}
	if t.Flags&RightIgnore != 0 {
		kid = kid.Next
	}
	return kid
}

// Attr returns the first attribute kid of tree, i.e. the child list past
// the ignore prefix (treeAttr).
func Attr(t *Tree) *Kid {
	return skipIgnore(t, t.Child)
}

// AttrKid returns the i-th attribute kid (getAttrKid).
func AttrKid(t *Tree, pos int) *Kid {
	kid := skipIgnore(t, t.Child)
	for i := 0; i < pos; i++ {
		kid = kid.Next
	}
	return kid
}

// GetAttr returns the tree stored at attribute offset pos.
func GetAttr(t *Tree, pos int) *Tree {
	return AttrKid(t, pos).Tree
}

// SetAttr writes val into attribute slot pos (colm_tree_set_attr).
func SetAttr(t *Tree, pos int, val *Tree) {
	AttrKid(t, pos).Tree = val
}

// Child returns the first real (non-attribute, non-ignore) child of tree
// (treeChild). objectLength is the language element's attribute count.
func Child(t *Tree, objectLength int) *Kid {
	kid := skipIgnore(t, t.Child)
	for a := 0; a < objectLength; a++ {
		kid = kid.Next
	}
	return kid
}

// FirstRealChild is an alias for Child kept for readability at call
// sites that already have the object length in hand.
func FirstRealChild(t *Tree, objectLength int) *Kid {
	return Child(t, objectLength)
}

// ExtractChild detaches and returns the real-child sublist, leaving tree's
// Child list ending at the last attribute/ignore kid (treeExtractChild).
func ExtractChild(t *Tree, objectLength int) *Kid {
	kid := t.Child
	var last *Kid
	if t.Flags&LeftIgnore != 0 {
		last = kid
		kid = kid.Next
	}
	if t.Flags&RightIgnore != 0 {
		last = kid
		kid = kid.Next
	}
	for a := 0; a < objectLength; a++ {
		last = kid
		kid = kid.Next
	}
	if last == nil {
		t.Child = nil
	} else {
		last.Next = nil
	}
	return kid
}

// LeftIgnoreTree returns the left-ignore list tree, or nil (treeLeftIgnore).
func LeftIgnoreTree(t *Tree) *Tree {
	if t.Flags&LeftIgnore != 0 {
		return t.Child.Tree
	}
	return nil
}

// RightIgnoreTree returns the right-ignore list tree, or nil (treeRightIgnore).
func RightIgnoreTree(t *Tree) *Tree {
	if t.Flags&RightIgnore == 0 {
		return nil
	}
	if t.Flags&LeftIgnore != 0 {
		return t.Child.Next.Tree
	}
	return t.Child.Tree
}

// LeftIgnoreKid returns the left-ignore header kid, or nil (treeLeftIgnoreKid).
func LeftIgnoreKid(t *Tree) *Kid {
	if t.Flags&LeftIgnore != 0 {
		return t.Child
	}
	return nil
}

// RightIgnoreKid returns the right-ignore header kid, or nil (treeRightIgnoreKid).
func RightIgnoreKid(t *Tree) *Kid {
	if t.Flags&RightIgnore == 0 {
		return nil
	}
	if t.Flags&LeftIgnore != 0 {
		return t.Child.Next
	}
	return t.Child
}
