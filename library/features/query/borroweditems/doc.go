// Package borroweditems implements listing the items a patron currently holds.
package borroweditems
