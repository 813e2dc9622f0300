// Package removepatron implements deleting a patron. Patrons holding open loans cannot be removed.
package removepatron
