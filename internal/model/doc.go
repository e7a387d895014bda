// Package model defines the document tree edited by docedit.
//
// A Document is the single composite node: a title plus an ordered
// sequence of leaf elements. Leaves come in three kinds:
//   - Paragraph: free text
//   - Headline: text with a level clamped to [1,3]
//   - Image: a filename with pixel dimensions
//
// # Traversal
//
// Read-only operations (rendering, counting, export) are written as a
// Visitor and driven through Document.Accept, which brackets the element
// pass with BeginDocument and EndDocument:
//
//	v := traverse.NewRenderVisitor()
//	doc.Accept(v)
//	fmt.Print(v.Output())
//
// New output formats are added by writing a new Visitor; the element
// types never change.
//
// # Mutation
//
// Structural edits go through the Append, Insert and Remove methods,
// normally via the commands in the history package so they can be undone.
// Every change marks the document dirty and notifies attached observers.
//
// # Serialization
//
// Serializable produces a tree of maps and slices tagged with a "type"
// discriminator; FromSerializable rebuilds a Document from such a tree.
// Concrete codecs live in the persist package.
package model
